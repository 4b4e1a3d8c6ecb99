package dynamo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-restaurant-api/internal/config"
	"github.com/go-restaurant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAPI struct{ mock.Mock }

func (m *mockAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}
func (m *mockAPI) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}
func (m *mockAPI) BatchGetItem(ctx context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.BatchGetItemOutput)
	return out, args.Error(1)
}

type mockTableCreator struct{ mock.Mock }

func (m *mockTableCreator) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.CreateTableOutput)
	return out, args.Error(1)
}

func mustMarshal(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return item
}

// --- accounts ---

func TestAccountRepo_Get_Missing(t *testing.T) {
	api := &mockAPI{}
	api.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewAccountRepo(api, "accounts").Get(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepo_Get_Found(t *testing.T) {
	api := &mockAPI{}
	item := mustMarshal(t, &domain.Account{Email: "a@b.com", AccountID: "01H", Verified: true})
	api.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		key, ok := in.Key["email"].(*types.AttributeValueMemberS)
		return ok && key.Value == "a@b.com" && *in.TableName == "accounts"
	})).Return(&dynamodb.GetItemOutput{Item: item}, nil)

	a, err := NewAccountRepo(api, "accounts").Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "01H", a.AccountID)
	assert.True(t, a.Verified)
}

func TestAccountRepo_Put_StoreError(t *testing.T) {
	api := &mockAPI{}
	api.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	err := NewAccountRepo(api, "accounts").Put(context.Background(), &domain.Account{Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorContains(t, err, "throttled")
}

// --- updates ---

func TestCategoryRepo_Update_MissingItem(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return *in.ConditionExpression == "attribute_exists(#pk)" && in.ExpressionAttributeNames["#pk"] == "category_id"
	})).Return(nil, &types.ConditionalCheckFailedException{})

	_, err := NewCategoryRepo(api, "categories").Update(context.Background(), "c1", map[string]interface{}{"name": "Drinks"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBannerRepo_Update_ReturnsNewImage(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{
		Attributes: mustMarshal(t, &domain.Banner{BannerID: "b1", Title: "Sale", Active: false}),
	}, nil)

	b, err := NewBannerRepo(api, "banners").Update(context.Background(), "b1", map[string]interface{}{fieldActive: false})
	require.NoError(t, err)
	assert.Equal(t, "Sale", b.Title)

	in := api.Calls[0].Arguments.Get(1).(*dynamodb.UpdateItemInput)
	assert.Contains(t, in.ExpressionAttributeNames, "#f0")
	assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
}

// --- ratings CAS ---

func TestProductRepo_SaveRatings_FirstWriteAllowsMissingVersion(t *testing.T) {
	api := &mockAPI{}
	stored := &domain.Product{ProductID: "p1", Ratings: []domain.Rating{{UserID: "u1", Value: 4}}, AvgRating: 4, Version: 1}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, stored)}, nil)

	p, err := NewProductRepo(api, "products").SaveRatings(context.Background(), "p1", stored.Ratings, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Version)

	in := api.Calls[0].Arguments.Get(1).(*dynamodb.UpdateItemInput)
	assert.Contains(t, *in.ConditionExpression, "attribute_not_exists(#ver)")
	assert.Equal(t, "4.0", in.ExpressionAttributeValues[":avg"].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "1", in.ExpressionAttributeValues[":next"].(*types.AttributeValueMemberN).Value)
}

func TestProductRepo_SaveRatings_LaterWriteRequiresVersion(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{
		Attributes: mustMarshal(t, &domain.Product{ProductID: "p1", Version: 4}),
	}, nil)

	_, err := NewProductRepo(api, "products").SaveRatings(context.Background(), "p1", nil, 0, 3)
	require.NoError(t, err)

	in := api.Calls[0].Arguments.Get(1).(*dynamodb.UpdateItemInput)
	assert.False(t, strings.Contains(*in.ConditionExpression, "attribute_not_exists"))
	assert.Equal(t, "3", in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
	_, isList := in.ExpressionAttributeValues[":ratings"].(*types.AttributeValueMemberL)
	assert.True(t, isList, "nil ratings must be stored as an empty list")
}

func TestProductRepo_SaveRatings_Conflict(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{
		Item: mustMarshal(t, &domain.Product{ProductID: "p1", Version: 7}),
	})

	_, err := NewProductRepo(api, "products").SaveRatings(context.Background(), "p1", nil, 0, 6)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductRepo_SaveRatings_Deleted(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

	_, err := NewProductRepo(api, "products").SaveRatings(context.Background(), "p1", nil, 0, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- batch get ---

func TestProductRepo_BatchGet_DedupesAndRetriesUnprocessed(t *testing.T) {
	api := &mockAPI{}
	p1 := mustMarshal(t, &domain.Product{ProductID: "p1", Name: "Soup"})
	p2 := mustMarshal(t, &domain.Product{ProductID: "p2", Name: "Tea"})
	unprocessed := map[string]types.KeysAndAttributes{
		"products": {Keys: []map[string]types.AttributeValue{strKey("product_id", "p2")}},
	}
	api.On("BatchGetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchGetItemInput) bool {
		return len(in.RequestItems["products"].Keys) == 2
	})).Return(&dynamodb.BatchGetItemOutput{
		Responses:       map[string][]map[string]types.AttributeValue{"products": {p1}},
		UnprocessedKeys: unprocessed,
	}, nil).Once()
	api.On("BatchGetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchGetItemInput) bool {
		return len(in.RequestItems["products"].Keys) == 1
	})).Return(&dynamodb.BatchGetItemOutput{
		Responses: map[string][]map[string]types.AttributeValue{"products": {p2}},
	}, nil).Once()

	got, err := NewProductRepo(api, "products").BatchGet(context.Background(), []string{"p1", "p2", "p1", ""})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Tea", got["p2"].Name)
	api.AssertNumberOfCalls(t, "BatchGetItem", 2)
}

func TestCategoryRepo_BatchGet_NoIDs(t *testing.T) {
	api := &mockAPI{}
	got, err := NewCategoryRepo(api, "categories").BatchGet(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	api.AssertNotCalled(t, "BatchGetItem", mock.Anything, mock.Anything)
}

// --- queries ---

func TestOrderRepo_ListByMobile_NewestFirst(t *testing.T) {
	api := &mockAPI{}
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.IndexName == "customer_mobile-created_at-index" && in.ScanIndexForward != nil && !*in.ScanIndexForward
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{mustMarshal(t, &domain.Order{OrderID: "o2"})},
	}, nil)

	orders, err := NewOrderRepo(api, "orders").ListByMobile(context.Background(), "555")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].OrderID)
}

func TestOrderRepo_Put_CopiesMobileToIndexKey(t *testing.T) {
	api := &mockAPI{}
	api.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		m, ok := in.Item["customer_mobile"].(*types.AttributeValueMemberS)
		return ok && m.Value == "555"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	o := &domain.Order{OrderID: "o1", Customer: domain.Customer{Mobile: "555"}}
	require.NoError(t, NewOrderRepo(api, "orders").Put(context.Background(), o))
	api.AssertExpectations(t)
}

func TestOrderRepo_Delete_StoreError(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	err := NewOrderRepo(api, "orders").Delete(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestBannerRepo_ListActive_Filter(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.FilterExpression != nil && *in.FilterExpression == "#active = :t"
	})).Return(&dynamodb.ScanOutput{}, nil)

	banners, err := NewBannerRepo(api, "banners").ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banners)
}

func TestBookingRepo_ListAll_Paginates(t *testing.T) {
	api := &mockAPI{}
	next := strKey("booking_id", "b1")
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{mustMarshal(t, &domain.PartyBooking{BookingID: "b1"})},
		LastEvaluatedKey: next,
	}, nil).Once()
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{mustMarshal(t, &domain.PartyBooking{BookingID: "b2"})},
	}, nil).Once()

	got, err := NewBookingRepo(api, "party_bookings").ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[1].BookingID)
}

// --- bootstrap ---

func TestBootstrap_CreatesEveryTable(t *testing.T) {
	tc := &mockTableCreator{}
	tc.On("CreateTable", mock.Anything, mock.Anything).Return(nil, &types.ResourceInUseException{}).Once()
	tc.On("CreateTable", mock.Anything, mock.Anything).Return(&dynamodb.CreateTableOutput{}, nil)

	Bootstrap(context.Background(), tc, config.DynamoTables{
		Accounts: "a", Categories: "c", Products: "p", Orders: "o", Banners: "b", PartyBookings: "pb",
	})
	tc.AssertNumberOfCalls(t, "CreateTable", 6)
}
