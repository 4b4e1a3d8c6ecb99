package booking

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
	"github.com/go-restaurant-api/internal/pkg/validate"
)

type Service interface {
	Book(ctx context.Context, req domain.PartyBookingRequest) (*domain.PartyBooking, error)
	// ListAll returns every booking, newest first.
	ListAll(ctx context.Context) ([]domain.PartyBooking, error)
}

type bookingStore interface {
	Put(ctx context.Context, b *domain.PartyBooking) error
	ListAll(ctx context.Context) ([]domain.PartyBooking, error)
}

type service struct {
	repo bookingStore
	now  func() time.Time
}

func NewService(repo bookingStore) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Book(ctx context.Context, req domain.PartyBookingRequest) (*domain.PartyBooking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Date = strings.TrimSpace(req.Date)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	b := &domain.PartyBooking{
		BookingID: id.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.PartyBooking, error) {
	bs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return []domain.PartyBooking{}, nil
	}
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].CreatedAt.After(bs[j].CreatedAt)
	})
	return bs, nil
}
