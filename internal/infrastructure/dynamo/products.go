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

// ProductRepo provides typed DynamoDB operations for the products table.
type ProductRepo struct {
	client    API
	tableName string
}

func NewProductRepo(client API, tableName string) *ProductRepo {
	return &ProductRepo{client: client, tableName: tableName}
}

func (r *ProductRepo) Put(ctx context.Context, p *domain.Product) error {
	return putItem(ctx, r.client, r.tableName, "product", p)
}

func (r *ProductRepo) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return getItem[domain.Product](ctx, r.client, r.tableName, "product", strKey("product_id", productID))
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	return scanAll[domain.Product](ctx, r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}, "products")
}

// ListByCategory queries the category_id-index GSI.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return queryAll[domain.Product](ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("category_id-index"),
		KeyConditionExpression: aws.String("category_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: categoryID},
		},
	}, "products")
}

// Update sets the given fields and returns the updated product.
func (r *ProductRepo) Update(ctx context.Context, productID string, updates map[string]interface{}) (*domain.Product, error) {
	return updateItem[domain.Product](ctx, r.client, r.tableName, "product", "product_id", productID, updates)
}

func (r *ProductRepo) Delete(ctx context.Context, productID string) error {
	return deleteItem(ctx, r.client, r.tableName, "product", strKey("product_id", productID))
}

// BatchGet returns the products that exist among ids, keyed by ID.
func (r *ProductRepo) BatchGet(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	items, err := batchGet[domain.Product](ctx, r.client, r.tableName, "products", "product_id", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Product, len(items))
	for _, p := range items {
		out[p.ProductID] = p
	}
	return out, nil
}

// SaveRatings writes the rating list and its average only if the stored
// version still equals expectedVersion, bumping the version by one.
// A lost race yields domain.ErrConflict; a deleted product yields
// domain.ErrNotFound.
func (r *ProductRepo) SaveRatings(ctx context.Context, productID string, ratings []domain.Rating, avg domain.AvgRating, expectedVersion int64) (*domain.Product, error) {
	if ratings == nil {
		ratings = []domain.Rating{}
	}
	ratingsAV, err := attributevalue.Marshal(ratings)
	if err != nil {
		return nil, fmt.Errorf("marshal ratings: %w", err)
	}
	now, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("marshal timestamp: %w", err)
	}

	condition := "attribute_exists(#pk) AND #ver = :expected"
	values := map[string]types.AttributeValue{
		":ratings": ratingsAV,
		":avg":     &types.AttributeValueMemberN{Value: avg.String()},
		":next":    &types.AttributeValueMemberN{Value: fmt.Sprint(expectedVersion + 1)},
		":now":     now,
	}
	if expectedVersion == 0 {
		condition = "attribute_exists(#pk) AND (attribute_not_exists(#ver) OR #ver = :expected)"
	}
	values[":expected"] = &types.AttributeValueMemberN{Value: fmt.Sprint(expectedVersion)}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("product_id", productID),
		UpdateExpression:    aws.String("SET #ratings = :ratings, #avg = :avg, #ver = :next, #upd = :now"),
		ConditionExpression: aws.String(condition),
		ExpressionAttributeNames: map[string]string{
			"#pk":      "product_id",
			"#ratings": fieldRatings,
			"#avg":     fieldAvgRating,
			"#ver":     fieldVersion,
			"#upd":     fieldUpdatedAt,
		},
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if isConditionFailed(err) {
			if conditionItemMissing(err) {
				return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
			}
			return nil, fmt.Errorf("product %s changed concurrently: %w", productID, domain.ErrConflict)
		}
		return nil, storeErr("save ratings", err)
	}
	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}
