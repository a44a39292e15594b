package service

import (
	"context"
	"fmt"
	"log"
	"time"

	cartdomain "github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/AbdelkaderTk/go-shop/internal/order/repository"
	"github.com/AbdelkaderTk/go-shop/internal/payment"
	"github.com/google/uuid"
)

// User is the identity slice checkout needs: who owns the cart and which
// email to denormalize onto the order.
type User struct {
	ID    string
	Email string
}

// CartEngine is the slice of the cart service checkout drives.
type CartEngine interface {
	ProjectCart(ctx context.Context, userID string) ([]cartdomain.ResolvedItem, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderPublisher broadcasts a paid order, e.g. for the confirmation email
// pipeline. Publishing is best-effort and never fails a checkout.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, user User, paymentToken string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
}

type CheckoutServiceImpl struct {
	cart      CartEngine
	orders    repository.OrderRepository
	payments  payment.Gateway
	publisher OrderPublisher
	currency  string
}

func NewCheckoutService(cart CartEngine, orders repository.OrderRepository, payments payment.Gateway, publisher OrderPublisher) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		cart:      cart,
		orders:    orders,
		payments:  payments,
		publisher: publisher,
		currency:  "usd",
	}
}

// Checkout snapshots the user's cart into an immutable order, captures the
// payment, and clears the cart. The sequence is strict:
//
//	project cart -> persist order (CREATED) -> charge -> mark PAID -> clear cart
//
// The order is durable before the charge is attempted, so a failed or
// crashed charge leaves an inspectable CREATED order and an intact cart.
// A retried checkout snapshots the cart again into a fresh order.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, user User, paymentToken string) (*domain.Order, error) {
	items, err := s.cart.ProjectCart(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := buildOrder(user, items, s.currency)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// no order record, no charge
		return nil, fmt.Errorf("persist order: %w", err)
	}

	result, err := s.payments.Charge(ctx, payment.ChargeRequest{
		AmountCents: order.TotalCents,
		Currency:    order.Currency,
		Token:       paymentToken,
		OrderID:     order.ID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("order %s: charge: %w", order.ID, err)
	}
	if !result.Succeeded {
		return nil, fmt.Errorf("order %s: %s: %w", order.ID, result.DeclineReason, ErrPaymentDeclined)
	}

	if err := s.orders.SetPayment(ctx, order.ID, result.Reference); err != nil {
		// The charge went through; surface the inconsistency instead of
		// pretending the payment failed.
		return nil, fmt.Errorf("order %s paid (ref %s) but not marked: %w", order.ID, result.Reference, err)
	}
	order.Status = domain.OrderStatusPaid
	order.PaymentRef = result.Reference

	if err := s.cart.ClearCart(ctx, user.ID); err != nil {
		// Cart state is recoverable; the paid order is what matters.
		log.Printf("order %s: clear cart failed: %v \n", order.ID, err)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		log.Printf("order %s: publish failed: %v \n", order.ID, err)
	}

	return order, nil
}

func (s *CheckoutServiceImpl) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListOrdersByUserID(ctx, userID)
}

// buildOrder deep-copies title, price and description from the resolved
// products into value line items and totals them in integer cents. After
// this point the order never reads the catalog again.
func buildOrder(user User, items []cartdomain.ResolvedItem, currency string) *domain.Order {
	lineItems := make([]domain.LineItem, 0, len(items))
	var totalCents int64
	for _, item := range items {
		lineItems = append(lineItems, domain.LineItem{
			ProductID:   item.Product.ID,
			Title:       item.Product.Title,
			Description: item.Product.Description,
			PriceCents:  item.Product.PriceCents,
			Quantity:    item.Quantity,
		})
		totalCents += int64(item.Quantity) * item.Product.PriceCents
	}

	return &domain.Order{
		ID:         uuid.New(),
		UserID:     user.ID,
		Email:      user.Email,
		Items:      lineItems,
		TotalCents: totalCents,
		Currency:   currency,
		Status:     domain.OrderStatusCreated,
		CreatedAt:  time.Now(),
	}
}
