package dynamo

import (
	"context"

	"github.com/go-restaurant-api/internal/domain"
)

// AccountRepo provides typed DynamoDB operations for the accounts table.
// Accounts are keyed by their normalized e-mail address.
type AccountRepo struct {
	client    API
	tableName string
}

func NewAccountRepo(client API, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

// Put writes the whole account item, replacing any previous version.
func (r *AccountRepo) Put(ctx context.Context, a *domain.Account) error {
	return putItem(ctx, r.client, r.tableName, "account", a)
}

func (r *AccountRepo) Get(ctx context.Context, email string) (*domain.Account, error) {
	return getItem[domain.Account](ctx, r.client, r.tableName, "account", strKey("email", email))
}

func (r *AccountRepo) Delete(ctx context.Context, email string) error {
	return deleteItem(ctx, r.client, r.tableName, "account", strKey("email", email))
}
