package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-restaurant-api/internal/domain"
)

// OrderRepo provides typed DynamoDB operations for the orders table.
type OrderRepo struct {
	client    API
	tableName string
}

func NewOrderRepo(client API, tableName string) *OrderRepo {
	return &OrderRepo{client: client, tableName: tableName}
}

func (r *OrderRepo) Put(ctx context.Context, o *domain.Order) error {
	o.CustomerMobile = o.Customer.Mobile
	return putItem(ctx, r.client, r.tableName, "order", o)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return scanAll[domain.Order](ctx, r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}, "orders")
}

// ListByMobile returns a customer's orders, newest first, via the
// customer_mobile-created_at-index GSI.
func (r *OrderRepo) ListByMobile(ctx context.Context, mobile string) ([]domain.Order, error) {
	return queryAll[domain.Order](ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("customer_mobile-created_at-index"),
		KeyConditionExpression: aws.String("customer_mobile = :m"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m": &types.AttributeValueMemberS{Value: mobile},
		},
		ScanIndexForward: aws.Bool(false),
	}, "orders")
}

func (r *OrderRepo) Delete(ctx context.Context, orderID string) error {
	return deleteItem(ctx, r.client, r.tableName, "order", strKey("order_id", orderID))
}
