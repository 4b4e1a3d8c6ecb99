package handler

import (
	"context"

	"github.com/go-restaurant-api/internal/application/image"
	"github.com/go-restaurant-api/internal/application/session"
	"github.com/go-restaurant-api/internal/domain"
	s3infra "github.com/go-restaurant-api/internal/infrastructure/s3"
	"github.com/stretchr/testify/mock"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestRegistrationOTP(ctx context.Context, email, rawPassword string) error {
	return m.Called(ctx, email, rawPassword).Error(0)
}
func (m *mockAuthSvc) VerifyRegistrationOTP(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
func (m *mockAuthSvc) RequestPasswordResetOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthSvc) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, email, rawPassword string) (*session.LoginResult, error) {
	args := m.Called(ctx, email, rawPassword)
	res, _ := args.Get(0).(*session.LoginResult)
	return res, args.Error(1)
}
func (m *mockSessionSvc) Profile(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

type mockProductSvc struct{ mock.Mock }

func (m *mockProductSvc) Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}
func (m *mockProductSvc) Get(ctx context.Context, productID string) (*domain.ProductView, error) {
	args := m.Called(ctx, productID)
	v, _ := args.Get(0).(*domain.ProductView)
	return v, args.Error(1)
}
func (m *mockProductSvc) List(ctx context.Context) ([]domain.ProductView, error) {
	args := m.Called(ctx)
	vs, _ := args.Get(0).([]domain.ProductView)
	return vs, args.Error(1)
}
func (m *mockProductSvc) ListCategoryFirst(ctx context.Context, categoryID string) ([]domain.ProductView, error) {
	args := m.Called(ctx, categoryID)
	vs, _ := args.Get(0).([]domain.ProductView)
	return vs, args.Error(1)
}
func (m *mockProductSvc) ListByCategory(ctx context.Context, categoryID string) ([]domain.ProductView, error) {
	args := m.Called(ctx, categoryID)
	vs, _ := args.Get(0).([]domain.ProductView)
	return vs, args.Error(1)
}
func (m *mockProductSvc) Update(ctx context.Context, productID string, in domain.UpdateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, productID, in)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}
func (m *mockProductSvc) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}
func (m *mockProductSvc) Rate(ctx context.Context, productID, raterID string, value int) (domain.AvgRating, error) {
	args := m.Called(ctx, productID, raterID, value)
	return args.Get(0).(domain.AvgRating), args.Error(1)
}

type mockOrderSvc struct{ mock.Mock }

func (m *mockOrderSvc) Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}
func (m *mockOrderSvc) Create(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}
func (m *mockOrderSvc) ListAll(ctx context.Context) ([]domain.OrderView, error) {
	args := m.Called(ctx)
	vs, _ := args.Get(0).([]domain.OrderView)
	return vs, args.Error(1)
}
func (m *mockOrderSvc) ListByMobile(ctx context.Context, mobile string) ([]domain.OrderView, error) {
	args := m.Called(ctx, mobile)
	vs, _ := args.Get(0).([]domain.OrderView)
	return vs, args.Error(1)
}
func (m *mockOrderSvc) Cancel(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockImageSvc struct{ mock.Mock }

func (m *mockImageSvc) Save(ctx context.Context, input image.UploadInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
func (m *mockImageSvc) Open(ctx context.Context, name string) (*s3infra.Object, error) {
	args := m.Called(ctx, name)
	o, _ := args.Get(0).(*s3infra.Object)
	return o, args.Error(1)
}
func (m *mockImageSvc) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
