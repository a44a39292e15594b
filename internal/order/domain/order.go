package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	// OrderStatusCreated is written before any payment attempt. Orders that
	// never get paid stay in this state as an audit trail.
	OrderStatusCreated OrderStatus = "CREATED"
	OrderStatusPaid    OrderStatus = "PAID"
)

// LineItem is a value snapshot of a product taken at order-creation time.
// No reference to the live catalog row is kept, so later price changes or
// deletions never touch an existing order.
type LineItem struct {
	ProductID   int64  `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
}

type Order struct {
	ID         uuid.UUID
	UserID     string
	Email      string // denormalized at checkout time
	Items      []LineItem
	TotalCents int64
	Currency   string
	Status     OrderStatus
	PaymentRef string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Total re-sums quantity × price over the frozen line items. For a
// well-formed order it equals TotalCents; the invoice prints this sum.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Quantity) * item.PriceCents
	}
	return total
}
