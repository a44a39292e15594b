package repository

import (
	"context"
	"errors"

	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	SetPayment(ctx context.Context, id uuid.UUID, paymentRef string) error
	RunMigrations(*Credentials) error
	Close() error
}
