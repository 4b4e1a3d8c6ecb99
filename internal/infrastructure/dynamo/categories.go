package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-restaurant-api/internal/domain"
)

// CategoryRepo provides typed DynamoDB operations for the categories table.
type CategoryRepo struct {
	client    API
	tableName string
}

func NewCategoryRepo(client API, tableName string) *CategoryRepo {
	return &CategoryRepo{client: client, tableName: tableName}
}

func (r *CategoryRepo) Put(ctx context.Context, c *domain.Category) error {
	return putItem(ctx, r.client, r.tableName, "category", c)
}

// ListByRestaurant queries the restaurant_id-index GSI.
func (r *CategoryRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Category, error) {
	return queryAll[domain.Category](ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("restaurant_id-index"),
		KeyConditionExpression: aws.String("restaurant_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: restaurantID},
		},
	}, "categories")
}

// Update sets the given fields and returns the updated category.
func (r *CategoryRepo) Update(ctx context.Context, categoryID string, updates map[string]interface{}) (*domain.Category, error) {
	return updateItem[domain.Category](ctx, r.client, r.tableName, "category", "category_id", categoryID, updates)
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID string) error {
	return deleteItem(ctx, r.client, r.tableName, "category", strKey("category_id", categoryID))
}

// BatchGet returns the categories that exist among ids, keyed by ID.
func (r *CategoryRepo) BatchGet(ctx context.Context, ids []string) (map[string]domain.Category, error) {
	items, err := batchGet[domain.Category](ctx, r.client, r.tableName, "categories", "category_id", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Category, len(items))
	for _, c := range items {
		out[c.CategoryID] = c
	}
	return out, nil
}
