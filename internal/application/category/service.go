package category

import (
	"context"
	"strings"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
	"github.com/go-restaurant-api/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName  = "name"
	fieldImage = "image"
)

type Service interface {
	Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, in domain.UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.RestaurantID = strings.TrimSpace(in.RestaurantID)
	if err := validate.Struct(in); err != nil {
		return nil, domain.NewError(domain.ErrValidation, "Name & restaurantId required")
	}
	c := &domain.Category{
		CategoryID:   id.New(),
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Image:        in.Image,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Category, error) {
	cats, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return cats, nil
}

func (s *service) Update(ctx context.Context, categoryID string, in domain.UpdateCategoryInput) (*domain.Category, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates[fieldName] = *in.Name
	}
	if in.Image != nil {
		updates[fieldImage] = *in.Image
	}
	c, err := s.repo.Update(ctx, categoryID, updates)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	return c, nil
}

// Delete removes the category. Deleting an unknown ID succeeds.
func (s *service) Delete(ctx context.Context, categoryID string) error {
	return s.repo.Delete(ctx, categoryID)
}
