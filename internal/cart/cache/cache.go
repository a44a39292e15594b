// Package cache keeps a short-lived copy of each user's cart in front of
// the mongo store. A miss is a normal outcome, not a failure.
package cache

import (
	"context"
	"errors"

	"github.com/AbdelkaderTk/go-shop/internal/cart/domain"
)

// ErrCacheMiss reports that no cached cart exists for the user.
var ErrCacheMiss = errors.New("cart not in cache")

// CartCache is the read-through cache the cart service consults before
// hitting the repository.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
