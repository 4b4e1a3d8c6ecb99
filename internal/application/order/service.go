package order

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
)

type Service interface {
	// Place is the customer checkout: a mobile number and at least one item
	// are mandatory.
	Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error)
	// Create is the back-office variant used by staff.
	Create(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.OrderView, error)
	ListByMobile(ctx context.Context, mobile string) ([]domain.OrderView, error)
	Cancel(ctx context.Context, orderID string) error
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByMobile(ctx context.Context, mobile string) ([]domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type productLookup interface {
	BatchGet(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	repo     orderStore
	products productLookup
	sms      smsSender
	now      func() time.Time
}

type ServiceDeps struct {
	OrderRepo   orderStore
	ProductRepo productLookup
	SMSSender   smsSender        // optional; nil disables order confirmations
	Now         func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:     deps.OrderRepo,
		products: deps.ProductRepo,
		sms:      deps.SMSSender,
		now:      deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	if req.Customer == nil || strings.TrimSpace(req.Customer.Mobile) == "" || len(req.Items) == 0 {
		return nil, domain.NewError(domain.ErrValidation, "Mobile & items required")
	}
	o, err := s.store(ctx, req)
	if err != nil {
		return nil, err
	}
	s.confirm(ctx, o)
	return o, nil
}

func (s *service) Create(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	if req.Customer == nil || len(req.Items) == 0 {
		return nil, domain.NewError(domain.ErrValidation, "Customer & items required")
	}
	// The mobile keys the customer order index, which rejects empty strings.
	if strings.TrimSpace(req.Customer.Mobile) == "" {
		return nil, domain.NewError(domain.ErrValidation, "Customer mobile required")
	}
	return s.store(ctx, req)
}

func (s *service) store(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, domain.NewError(domain.ErrValidation, "Every item needs a product _id")
		}
		if it.Qty < 1 {
			return nil, domain.NewError(domain.ErrValidation, "Item qty must be at least 1")
		}
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Qty: it.Qty})
	}
	now := s.now().UTC()
	c := *req.Customer
	c.Mobile = strings.TrimSpace(c.Mobile)
	o := &domain.Order{
		OrderID:   id.New(),
		Customer:  c,
		Items:     items,
		Total:     req.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// confirm texts the customer. Failures are logged, never returned: the
// order is already stored.
func (s *service) confirm(ctx context.Context, o *domain.Order) {
	if s.sms == nil {
		return
	}
	msg := fmt.Sprintf("Your order %s has been placed. Total: %.2f", o.OrderID, o.Total)
	if err := s.sms.SendSMS(ctx, o.Customer.Mobile, msg); err != nil {
		slog.Warn("order confirmation sms failed", "order_id", o.OrderID, "err", err)
	}
}

func (s *service) ListAll(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return s.join(ctx, orders, false)
}

// ListByMobile returns a customer's orders, newest first.
func (s *service) ListByMobile(ctx context.Context, mobile string) ([]domain.OrderView, error) {
	orders, err := s.repo.ListByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return s.join(ctx, orders, true)
}

// Cancel deletes the order. Cancelling an unknown ID succeeds.
func (s *service) Cancel(ctx context.Context, orderID string) error {
	return s.repo.Delete(ctx, orderID)
}

// join resolves product references with one batch read. withImage adds the
// product image to each summary.
func (s *service) join(ctx context.Context, orders []domain.Order, withImage bool) ([]domain.OrderView, error) {
	views := make([]domain.OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}
	var ids []string
	for _, o := range orders {
		for _, it := range o.Items {
			ids = append(ids, it.ProductID)
		}
	}
	products, err := s.products.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		items := make([]domain.OrderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			v := domain.OrderItemView{Qty: it.Qty}
			if p, ok := products[it.ProductID]; ok {
				v.Product = &domain.ProductSummary{ID: p.ProductID, Name: p.Name, Price: p.Price}
				if withImage {
					v.Product.Image = p.Image
				}
			}
			items = append(items, v)
		}
		views = append(views, domain.OrderView{
			OrderID:   o.OrderID,
			Customer:  o.Customer,
			Items:     items,
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return views, nil
}
