package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-restaurant-api/internal/domain"
)

// BookingRepo provides typed DynamoDB operations for the party bookings table.
type BookingRepo struct {
	client    API
	tableName string
}

func NewBookingRepo(client API, tableName string) *BookingRepo {
	return &BookingRepo{client: client, tableName: tableName}
}

func (r *BookingRepo) Put(ctx context.Context, b *domain.PartyBooking) error {
	return putItem(ctx, r.client, r.tableName, "party booking", b)
}

func (r *BookingRepo) ListAll(ctx context.Context) ([]domain.PartyBooking, error) {
	return scanAll[domain.PartyBooking](ctx, r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}, "party bookings")
}
