package banner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
)

const (
	fieldTitle    = "title"
	fieldSubtitle = "subtitle"
	fieldDiscount = "discount"
	fieldActive   = "active"
	fieldImage    = "image"
)

type Service interface {
	Add(ctx context.Context, in domain.BannerInput) (*domain.Banner, error)
	ListAll(ctx context.Context) ([]domain.Banner, error)
	ListActive(ctx context.Context) ([]domain.Banner, error)
	Update(ctx context.Context, bannerID string, in domain.UpdateBannerInput) (*domain.Banner, error)
	Delete(ctx context.Context, bannerID string) error
}

type bannerStore interface {
	Put(ctx context.Context, b *domain.Banner) error
	ListAll(ctx context.Context) ([]domain.Banner, error)
	ListActive(ctx context.Context) ([]domain.Banner, error)
	Update(ctx context.Context, bannerID string, updates map[string]interface{}) (*domain.Banner, error)
	Delete(ctx context.Context, bannerID string) error
}

type service struct {
	repo bannerStore
	now  func() time.Time
}

func NewService(repo bannerStore) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Add(ctx context.Context, in domain.BannerInput) (*domain.Banner, error) {
	if in.Image == nil || strings.TrimSpace(*in.Image) == "" {
		return nil, domain.NewError(domain.ErrValidation, "Image required")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := s.now().UTC()
	b := &domain.Banner{
		BannerID:  id.New(),
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		Discount:  in.Discount,
		Image:     *in.Image,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Banner, error) {
	return nonNil(s.repo.ListAll(ctx))
}

func (s *service) ListActive(ctx context.Context) ([]domain.Banner, error) {
	return nonNil(s.repo.ListActive(ctx))
}

// Update sets only the supplied fields.
func (s *service) Update(ctx context.Context, bannerID string, in domain.UpdateBannerInput) (*domain.Banner, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates[fieldTitle] = *in.Title
	}
	if in.Subtitle != nil {
		updates[fieldSubtitle] = *in.Subtitle
	}
	if in.Discount != nil {
		updates[fieldDiscount] = *in.Discount
	}
	if in.Active != nil {
		updates[fieldActive] = *in.Active
	}
	if in.Image != nil && *in.Image != "" {
		updates[fieldImage] = *in.Image
	}
	b, err := s.repo.Update(ctx, bannerID, updates)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, "Banner not found")
	}
	return b, err
}

// Delete removes the banner. Deleting an unknown ID succeeds.
func (s *service) Delete(ctx context.Context, bannerID string) error {
	return s.repo.Delete(ctx, bannerID)
}

func nonNil(bs []domain.Banner, err error) ([]domain.Banner, error) {
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []domain.Banner{}
	}
	return bs, nil
}
