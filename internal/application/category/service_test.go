package category

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Put(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCategoryStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Category, error) {
	args := m.Called(ctx, restaurantID)
	cats, _ := args.Get(0).([]domain.Category)
	return cats, args.Error(1)
}
func (m *mockCategoryStore) Update(ctx context.Context, categoryID string, updates map[string]interface{}) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, updates)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) Delete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreate_RequiresNameAndRestaurant(t *testing.T) {
	repo := &mockCategoryStore{}
	svc := NewService(repo)

	for _, in := range []domain.CategoryInput{{Name: "Drinks"}, {RestaurantID: "r1"}, {Name: " ", RestaurantID: "r1"}} {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "Name & restaurantId required")
	}
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_Persists(t *testing.T) {
	repo := &mockCategoryStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Drinks" && c.RestaurantID == "r1" && c.CategoryID != "" && *c.Image == "1.png"
	})).Return(nil)

	c, err := NewService(repo).Create(context.Background(), domain.CategoryInput{Name: "Drinks", RestaurantID: "r1", Image: strPtr("1.png")})
	require.NoError(t, err)
	assert.Equal(t, "Drinks", c.Name)
	repo.AssertExpectations(t)
}

func TestListByRestaurant_EmptyIsNotNil(t *testing.T) {
	repo := &mockCategoryStore{}
	repo.On("ListByRestaurant", mock.Anything, "r9").Return(nil, nil)

	cats, err := NewService(repo).ListByRestaurant(context.Background(), "r9")
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	repo := &mockCategoryStore{}
	repo.On("Update", mock.Anything, "c1", map[string]interface{}{fieldName: "Soups"}).
		Return(&domain.Category{CategoryID: "c1", Name: "Soups"}, nil)

	c, err := NewService(repo).Update(context.Background(), "c1", domain.UpdateCategoryInput{Name: strPtr("Soups")})
	require.NoError(t, err)
	assert.Equal(t, "Soups", c.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockCategoryStore{}
	repo.On("Update", mock.Anything, "nope", mock.Anything).Return(nil, fmt.Errorf("category not found: %w", domain.ErrNotFound))

	_, err := NewService(repo).Update(context.Background(), "nope", domain.UpdateCategoryInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Category not found")
}

func TestDelete(t *testing.T) {
	repo := &mockCategoryStore{}
	repo.On("Delete", mock.Anything, "c1").Return(nil)

	assert.NoError(t, NewService(repo).Delete(context.Background(), "c1"))
	repo.AssertExpectations(t)
}
