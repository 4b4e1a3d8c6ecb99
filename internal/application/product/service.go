package product

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
	"github.com/go-restaurant-api/internal/pkg/validate"
)

// maxRateAttempts bounds the compare-and-swap loop in Rate.
const maxRateAttempts = 5

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldPrice       = "price"
	fieldDescription = "description"
	fieldCategoryID  = "category_id"
	fieldImage       = "image"
)

type Service interface {
	Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.ProductView, error)
	List(ctx context.Context) ([]domain.ProductView, error)
	ListCategoryFirst(ctx context.Context, categoryID string) ([]domain.ProductView, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.ProductView, error)
	Update(ctx context.Context, productID string, in domain.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	Rate(ctx context.Context, productID, raterID string, value int) (domain.AvgRating, error)
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	SaveRatings(ctx context.Context, productID string, ratings []domain.Rating, avg domain.AvgRating, expectedVersion int64) (*domain.Product, error)
}

type categoryLookup interface {
	BatchGet(ctx context.Context, ids []string) (map[string]domain.Category, error)
}

type ratingRecorder interface {
	RatingRecorded(result string, attempts int)
}

type service struct {
	repo       productStore
	categories categoryLookup
	recorder   ratingRecorder
	now        func() time.Time
}

type ServiceDeps struct {
	ProductRepo  productStore
	CategoryRepo categoryLookup
	Recorder     ratingRecorder   // optional
	Now          func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:       deps.ProductRepo,
		categories: deps.CategoryRepo,
		recorder:   deps.Recorder,
		now:        deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	return s
}

func (s *service) Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := validate.Struct(in); err != nil {
		return nil, domain.NewError(domain.ErrValidation, "All fields required")
	}
	now := s.now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Ratings:     []domain.Rating{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.ProductView, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, notFound(err)
	}
	views, err := s.join(ctx, []domain.Product{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns every product in creation order with its category joined.
func (s *service) List(ctx context.Context) ([]domain.ProductView, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, products)
}

// ListCategoryFirst returns all products, those of categoryID first. Both
// groups keep creation order.
func (s *service) ListCategoryFirst(ctx context.Context, categoryID string) ([]domain.ProductView, error) {
	views, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return inCategory(views[i], categoryID) && !inCategory(views[j], categoryID)
	})
	return views, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]domain.ProductView, error) {
	products, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, products)
}

// Update changes only the fields set in in.
func (s *service) Update(ctx context.Context, productID string, in domain.UpdateProductInput) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewError(domain.ErrValidation, "Name cannot be empty")
		}
		updates[fieldName] = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.NewError(domain.ErrValidation, "Price must be positive")
		}
		updates[fieldPrice] = *in.Price
	}
	if in.Description != nil {
		updates[fieldDescription] = *in.Description
	}
	if in.CategoryID != nil {
		// category_id keys the category index, which rejects empty strings.
		if strings.TrimSpace(*in.CategoryID) == "" {
			return nil, domain.NewError(domain.ErrValidation, "categoryId cannot be empty")
		}
		updates[fieldCategoryID] = strings.TrimSpace(*in.CategoryID)
	}
	if in.Image != nil {
		updates[fieldImage] = *in.Image
	}
	p, err := s.repo.Update(ctx, productID, updates)
	if err != nil {
		return nil, notFound(err)
	}
	normalize(p)
	return p, nil
}

// Delete removes the product. Deleting an unknown ID succeeds.
func (s *service) Delete(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}

// Rate records raterID's rating for the product, replacing any earlier one,
// and returns the new average. Writes are conditional on the version read,
// so concurrent raters never overwrite each other; a lost race re-reads
// and retries.
func (s *service) Rate(ctx context.Context, productID, raterID string, value int) (domain.AvgRating, error) {
	raterID = strings.TrimSpace(raterID)
	if raterID == "" {
		return 0, domain.NewError(domain.ErrValidation, "userId required")
	}
	if value < domain.MinRating || value > domain.MaxRating {
		return 0, domain.NewError(domain.ErrValidation, "Rating must be between 1 and 5")
	}

	for attempt := 1; attempt <= maxRateAttempts; attempt++ {
		p, err := s.repo.Get(ctx, productID)
		if err != nil {
			s.recorder.RatingRecorded("error", attempt)
			return 0, notFound(err)
		}
		ratings, avg := applyRating(p.Ratings, raterID, value)
		_, err = s.repo.SaveRatings(ctx, productID, ratings, avg, p.Version)
		if err == nil {
			s.recorder.RatingRecorded("ok", attempt)
			return avg, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			s.recorder.RatingRecorded("error", attempt)
			return 0, notFound(err)
		}
		slog.Debug("rating write lost a race, retrying", "product_id", productID, "attempt", attempt)
	}
	s.recorder.RatingRecorded("conflict", maxRateAttempts)
	return 0, domain.NewError(domain.ErrConflict, "Product is being rated concurrently, please retry")
}

// join resolves each product's category reference with one batch read.
// Products come back in creation order.
func (s *service) join(ctx context.Context, products []domain.Product) ([]domain.ProductView, error) {
	if len(products) == 0 {
		return []domain.ProductView{}, nil
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.CategoryID)
	}
	cats, err := s.categories.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		}
		return products[i].ProductID < products[j].ProductID
	})

	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		p := &products[i]
		normalize(p)
		v := domain.ProductView{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Image:       p.Image,
			Ratings:     p.Ratings,
			AvgRating:   p.AvgRating,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if c, ok := cats[p.CategoryID]; ok {
			v.Category = &domain.CategoryRef{ID: c.CategoryID, Name: c.Name}
		}
		views = append(views, v)
	}
	return views, nil
}

func inCategory(v domain.ProductView, categoryID string) bool {
	return v.Category != nil && v.Category.ID == categoryID
}

// normalize makes a product read from storage render ratings as [] rather
// than null.
func normalize(p *domain.Product) {
	if p.Ratings == nil {
		p.Ratings = []domain.Rating{}
	}
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewError(domain.ErrNotFound, "Product not found")
	}
	return err
}

type noopRecorder struct{}

func (noopRecorder) RatingRecorded(string, int) {}
