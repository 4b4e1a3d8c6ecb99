package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-restaurant-api/internal/domain"
)

// BatchGetItem accepts at most 100 keys per call.
const batchGetLimit = 100

// maxUnprocessedRounds bounds how often unprocessed batch keys are resubmitted.
const maxUnprocessedRounds = 5

func putItem(ctx context.Context, client API, table, entity string, v interface{}) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entity, err)
	}
	if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}); err != nil {
		return storeErr("put "+entity, err)
	}
	return nil
}

func getItem[T any](ctx context.Context, client API, table, entity string, key map[string]types.AttributeValue) (*T, error) {
	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, storeErr("get "+entity, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s not found: %w", entity, domain.ErrNotFound)
	}
	var v T
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
	}
	return &v, nil
}

func deleteItem(ctx context.Context, client API, table, entity string, key map[string]types.AttributeValue) error {
	if _, err := client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	}); err != nil {
		return storeErr("delete "+entity, err)
	}
	return nil
}

// updateItem applies updates to an existing item and returns the new image.
// It never creates an item: a missing key yields domain.ErrNotFound.
func updateItem[T any](ctx context.Context, client API, table, entity, keyAttr, keyValue string, updates map[string]interface{}) (*T, error) {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = keyAttr
	out, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       strKey(keyAttr, keyValue),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, fmt.Errorf("%s not found: %w", entity, domain.ErrNotFound)
		}
		return nil, storeErr("update "+entity, err)
	}
	var v T
	if err := attributevalue.UnmarshalMap(out.Attributes, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
	}
	return &v, nil
}

func scanAll[T any](ctx context.Context, client API, input *dynamodb.ScanInput, entity string) ([]T, error) {
	var items []T
	p := dynamodb.NewScanPaginator(client, input)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, storeErr("scan "+entity, err)
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
		}
		items = append(items, page...)
	}
	return items, nil
}

func queryAll[T any](ctx context.Context, client API, input *dynamodb.QueryInput, entity string) ([]T, error) {
	var items []T
	p := dynamodb.NewQueryPaginator(client, input)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, storeErr("query "+entity, err)
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
		}
		items = append(items, page...)
	}
	return items, nil
}

// batchGet fetches items by a single string key attribute. Missing keys are
// simply absent from the result; duplicates in ids are collapsed.
func batchGet[T any](ctx context.Context, client API, table, entity, keyAttr string, ids []string) ([]T, error) {
	seen := make(map[string]struct{}, len(ids))
	var keys []map[string]types.AttributeValue
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, strKey(keyAttr, id))
	}

	var items []T
	for start := 0; start < len(keys); start += batchGetLimit {
		end := min(start+batchGetLimit, len(keys))
		request := map[string]types.KeysAndAttributes{
			table: {Keys: keys[start:end]},
		}
		for round := 0; len(request) > 0; round++ {
			if round == maxUnprocessedRounds {
				return nil, storeErr("batch get "+entity, fmt.Errorf("unprocessed keys after %d rounds", round))
			}
			out, err := client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, storeErr("batch get "+entity, err)
			}
			var page []T
			if err := attributevalue.UnmarshalListOfMaps(out.Responses[table], &page); err != nil {
				return nil, fmt.Errorf("unmarshal %s: %w", entity, err)
			}
			items = append(items, page...)
			request = out.UnprocessedKeys
		}
	}
	return items, nil
}
