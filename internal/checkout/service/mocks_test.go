package service

import (
	"context"

	cartdomain "github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/AbdelkaderTk/go-shop/internal/order/repository"
	"github.com/AbdelkaderTk/go-shop/internal/payment"
	"github.com/google/uuid"
)

// MockCartEngine implements CartEngine for testing
type MockCartEngine struct {
	Items      []cartdomain.ResolvedItem
	ProjectErr error
	ClearErr   error
	Cleared    bool
}

func (m *MockCartEngine) ProjectCart(context.Context, string) ([]cartdomain.ResolvedItem, error) {
	if m.ProjectErr != nil {
		return nil, m.ProjectErr
	}
	return m.Items, nil
}

func (m *MockCartEngine) ClearCart(context.Context, string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	CreateErr     error
	SetPaymentErr error
	Created       *domain.Order // Captures the order passed to CreateOrder
	PaidID        uuid.UUID
	PaidRef       string
	Orders        []*domain.Order
	ListErr       error
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = order
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, o := range m.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	if m.Created != nil && m.Created.ID == id {
		return m.Created, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) ListOrdersByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []*domain.Order
	for _, o := range m.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOrderRepository) SetPayment(_ context.Context, id uuid.UUID, ref string) error {
	if m.SetPaymentErr != nil {
		return m.SetPaymentErr
	}
	m.PaidID = id
	m.PaidRef = ref
	return nil
}

func (m *MockOrderRepository) RunMigrations(*repository.Credentials) error {
	return nil
}

func (m *MockOrderRepository) Close() error {
	return nil
}

// MockGateway implements payment.Gateway for testing
type MockGateway struct {
	Result  *payment.ChargeResult
	Err     error
	Request *payment.ChargeRequest // Captures the last charge request
}

func (m *MockGateway) Charge(_ context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	m.Request = &req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// MockPublisher implements OrderPublisher for testing
type MockPublisher struct {
	Published *domain.Order
	Err       error
}

func (m *MockPublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Published = order
	return nil
}
