package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps another Gateway in a circuit breaker so checkout
// fails fast while the payment provider is unreachable instead of holding
// requests open. Declines do not count as failures; only transport/API
// errors trip the breaker.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[*ChargeResult]
}

func NewBreakerGateway(next Gateway) *BreakerGateway {
	cb := gobreaker.NewCircuitBreaker[*ChargeResult](gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &BreakerGateway{next: next, cb: cb}
}

func (b *BreakerGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	return b.cb.Execute(func() (*ChargeResult, error) {
		return b.next.Charge(ctx, req)
	})
}
