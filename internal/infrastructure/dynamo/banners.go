package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-restaurant-api/internal/domain"
)

// BannerRepo provides typed DynamoDB operations for the banners table.
type BannerRepo struct {
	client    API
	tableName string
}

func NewBannerRepo(client API, tableName string) *BannerRepo {
	return &BannerRepo{client: client, tableName: tableName}
}

func (r *BannerRepo) Put(ctx context.Context, b *domain.Banner) error {
	return putItem(ctx, r.client, r.tableName, "banner", b)
}

func (r *BannerRepo) ListAll(ctx context.Context) ([]domain.Banner, error) {
	return scanAll[domain.Banner](ctx, r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}, "banners")
}

// ListActive scans for banners flagged active.
func (r *BannerRepo) ListActive(ctx context.Context) ([]domain.Banner, error) {
	return scanAll[domain.Banner](ctx, r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#active = :t"),
		ExpressionAttributeNames: map[string]string{"#active": fieldActive},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	}, "banners")
}

// Update sets the given fields and returns the updated banner.
func (r *BannerRepo) Update(ctx context.Context, bannerID string, updates map[string]interface{}) (*domain.Banner, error) {
	return updateItem[domain.Banner](ctx, r.client, r.tableName, "banner", "banner_id", bannerID, updates)
}

func (r *BannerRepo) Delete(ctx context.Context, bannerID string) error {
	return deleteItem(ctx, r.client, r.tableName, "banner", strKey("banner_id", bannerID))
}
