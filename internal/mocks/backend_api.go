package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"resto-dashboard/internal/domain"
)

// BackendAPI is a testify mock of the backend collaborator.
type BackendAPI struct {
	mock.Mock
}

func (m *BackendAPI) Register(ctx context.Context, reg domain.Registration) (domain.UserInfo, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(domain.UserInfo), args.Error(1)
}

func (m *BackendAPI) Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *BackendAPI) CurrentUser(ctx context.Context, token string) (domain.UserInfo, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.UserInfo), args.Error(1)
}

func (m *BackendAPI) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dish), args.Error(1)
}

func (m *BackendAPI) CreateDish(ctx context.Context, form io.Reader, contentType, token string) error {
	args := m.Called(ctx, form, contentType, token)
	return args.Error(0)
}

func (m *BackendAPI) HideDish(ctx context.Context, dishID int, token string) (domain.Dish, error) {
	args := m.Called(ctx, dishID, token)
	return args.Get(0).(domain.Dish), args.Error(1)
}

func (m *BackendAPI) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allergen), args.Error(1)
}

func (m *BackendAPI) ListOrders(ctx context.Context, token string) ([]domain.OrderView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderView), args.Error(1)
}

func (m *BackendAPI) SubmitOrder(ctx context.Context, order domain.Order, token string) error {
	args := m.Called(ctx, order, token)
	return args.Error(0)
}

func (m *BackendAPI) UpdateOrderStatus(ctx context.Context, orderID int, token string) (domain.OrderView, error) {
	args := m.Called(ctx, orderID, token)
	return args.Get(0).(domain.OrderView), args.Error(1)
}

func (m *BackendAPI) GenerateReport(ctx context.Context, req domain.ReportRequest) (domain.ReportResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ReportResponse), args.Error(1)
}
