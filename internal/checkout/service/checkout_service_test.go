package service

import (
	"context"
	"errors"
	"testing"

	cartservice "github.com/AbdelkaderTk/go-shop/internal/cart/service"

	cartdomain "github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	catalog "github.com/AbdelkaderTk/go-shop/internal/catalog/domain"
	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/AbdelkaderTk/go-shop/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = User{ID: "123", Email: "test@example.com"}

func resolvedItems() []cartdomain.ResolvedItem {
	return []cartdomain.ResolvedItem{
		{Product: &catalog.Product{ID: 1, Title: "Widget", Description: "A very useful widget", PriceCents: 1000}, Quantity: 2},
		{Product: &catalog.Product{ID: 2, Title: "Notebook", Description: "Dotted, 120 pages", PriceCents: 550}, Quantity: 1},
	}
}

func TestCheckout_Success(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Reference: "ch_abc", Succeeded: true}}
	publisher := &MockPublisher{}

	sut := NewCheckoutService(cart, orders, gateway, publisher)
	order, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.NoError(t, err)
	require.NotNil(t, order)

	// fixed-point total: 2 x 10.00 + 1 x 5.50 = 25.50
	assert.Equal(t, int64(2550), order.TotalCents)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, "ch_abc", order.PaymentRef)
	assert.Equal(t, testUser.Email, order.Email)

	// line items are value snapshots of the projected cart
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Widget", order.Items[0].Title)
	assert.Equal(t, int64(1000), order.Items[0].PriceCents)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// order was persisted before the charge, with the order id as metadata
	require.NotNil(t, orders.Created)
	require.NotNil(t, gateway.Request)
	assert.Equal(t, orders.Created.ID.String(), gateway.Request.OrderID)
	assert.Equal(t, int64(2550), gateway.Request.AmountCents)
	assert.Equal(t, "tok_visa", gateway.Request.Token)

	assert.Equal(t, order.ID, orders.PaidID)
	assert.True(t, cart.Cleared)
	require.NotNil(t, publisher.Published)
	assert.Equal(t, order.ID, publisher.Published.ID)
}

func TestCheckout_SnapshotSurvivesPriceChange(t *testing.T) {
	items := resolvedItems()
	cart := &MockCartEngine{Items: items}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Reference: "ch_abc", Succeeded: true}}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	order, err := sut.Checkout(context.Background(), testUser, "tok_visa")
	require.NoError(t, err)

	// catalog price changes after checkout must not touch the order
	items[0].Product.PriceCents = 99999
	assert.Equal(t, int64(1000), order.Items[0].PriceCents)
	assert.Equal(t, int64(2550), order.TotalCents)
	assert.Equal(t, order.TotalCents, order.Total())
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart := &MockCartEngine{}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, orders.Created)  // nothing written
	assert.Nil(t, gateway.Request) // nothing charged
}

func TestCheckout_ProjectionFailure(t *testing.T) {
	cart := &MockCartEngine{ProjectErr: cartservice.ErrProductUnavailable}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.ErrorIs(t, err, cartservice.ErrProductUnavailable)
	assert.Nil(t, orders.Created)
	assert.Nil(t, gateway.Request)
}

func TestCheckout_OrderWriteFails_ChargeNotAttempted(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{CreateErr: errors.New("database error")}
	gateway := &MockGateway{}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.ErrorContains(t, err, "database error")
	assert.Nil(t, gateway.Request) // payment must not be attempted
	assert.False(t, cart.Cleared)
}

func TestCheckout_ChargeDeclined_OrderKeptCartKept(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Succeeded: false, DeclineReason: "card_declined"}}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.ErrorIs(t, err, ErrPaymentDeclined)
	require.ErrorContains(t, err, orders.Created.ID.String())

	// the CREATED order remains as an audit record, unpaid
	require.NotNil(t, orders.Created)
	assert.Equal(t, domain.OrderStatusCreated, orders.Created.Status)
	assert.Empty(t, orders.Created.PaymentRef)
	assert.Empty(t, orders.PaidRef)

	// the cart keeps its pre-checkout contents for a retry
	assert.False(t, cart.Cleared)
}

func TestCheckout_GatewayError_OrderKeptCartKept(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Err: errors.New("gateway unreachable")}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.ErrorContains(t, err, "gateway unreachable")
	require.NotNil(t, orders.Created)
	assert.Equal(t, domain.OrderStatusCreated, orders.Created.Status)
	assert.False(t, cart.Cleared)
}

func TestCheckout_RetryAfterDecline_CreatesNewOrder(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Succeeded: false, DeclineReason: "card_declined"}}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	_, err := sut.Checkout(context.Background(), testUser, "tok_visa")
	require.ErrorIs(t, err, ErrPaymentDeclined)
	firstID := orders.Created.ID

	gateway.Result = &payment.ChargeResult{Reference: "ch_retry", Succeeded: true}
	order, err := sut.Checkout(context.Background(), testUser, "tok_visa")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, order.ID) // fresh order per attempt
}

func TestCheckout_ClearCartFailure_StillSucceeds(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems(), ClearErr: errors.New("mongo down")}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Reference: "ch_abc", Succeeded: true}}

	sut := NewCheckoutService(cart, orders, gateway, &MockPublisher{})
	order, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
}

func TestCheckout_PublishFailure_StillSucceeds(t *testing.T) {
	cart := &MockCartEngine{Items: resolvedItems()}
	orders := &MockOrderRepository{}
	gateway := &MockGateway{Result: &payment.ChargeResult{Reference: "ch_abc", Succeeded: true}}
	publisher := &MockPublisher{Err: errors.New("kafka down")}

	sut := NewCheckoutService(cart, orders, gateway, publisher)
	order, err := sut.Checkout(context.Background(), testUser, "tok_visa")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.True(t, cart.Cleared)
}

func TestListOrders(t *testing.T) {
	orders := &MockOrderRepository{Orders: []*domain.Order{
		{UserID: "123", TotalCents: 2550},
		{UserID: "456", TotalCents: 999},
	}}

	sut := NewCheckoutService(&MockCartEngine{}, orders, &MockGateway{}, &MockPublisher{})
	got, err := sut.ListOrders(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2550), got[0].TotalCents)
}
