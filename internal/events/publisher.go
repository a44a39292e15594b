package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/segmentio/kafka-go"
)

// OrderPlacedEvent is the payload the notification pipeline (order
// confirmation email) consumes.
type OrderPlacedEvent struct {
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	Email      string            `json:"email"`
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"total_cents"`
	Currency   string            `json:"currency"`
	PlacedAt   time.Time         `json:"placed_at"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "orders-placed",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(OrderPlacedEvent{
		OrderID:    order.ID.String(),
		UserID:     order.UserID,
		Email:      order.Email,
		Items:      order.Items,
		TotalCents: order.TotalCents,
		Currency:   order.Currency,
		PlacedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order placed event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error {
	return nil
}
