package invoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/google/uuid"
)

// ErrNotOwner is returned when someone asks for an invoice of an order
// they did not place.
var ErrNotOwner = errors.New("order belongs to another user")

// OrderReader is the slice of the order store the invoice service needs.
type OrderReader interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type Service struct {
	orders   OrderReader
	store    Store
	renderer *Renderer
}

func NewService(orders OrderReader, store Store) *Service {
	return &Service{
		orders:   orders,
		store:    store,
		renderer: NewRenderer(),
	}
}

// Filename is the deterministic storage key for an order's invoice.
func Filename(orderID uuid.UUID) string {
	return fmt.Sprintf("invoice-%s.pdf", orderID)
}

// RenderInvoice renders the order's invoice once and streams the bytes to
// both the durable store and the response sink. repository.ErrOrderNotFound
// passes through for unknown ids; ErrNotOwner guards against reading someone
// else's order.
func (s *Service) RenderInvoice(ctx context.Context, orderID uuid.UUID, requestingUserID string, response io.Writer) error {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != requestingUserID {
		return fmt.Errorf("order %s: %w", orderID, ErrNotOwner)
	}

	stored, err := s.store.Create(Filename(orderID))
	if err != nil {
		return fmt.Errorf("order %s: %w", orderID, err)
	}

	// One render pass feeding both sinks: stored and returned bytes can
	// never diverge.
	if err := s.renderer.Render(order, io.MultiWriter(stored, response)); err != nil {
		if closeErr := stored.Close(); closeErr != nil {
			log.Printf("close invoice file error: %v \n", closeErr)
		}
		// a half-written pdf must not stay in durable storage
		if rmErr := s.store.Remove(Filename(orderID)); rmErr != nil {
			log.Printf("remove partial invoice error: %v \n", rmErr)
		}
		return err
	}

	if err := stored.Close(); err != nil {
		return fmt.Errorf("order %s: close stored invoice: %w", orderID, err)
	}
	return nil
}
