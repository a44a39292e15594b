package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AbdelkaderTk/go-shop/internal/cart/cache"
	"github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	"github.com/AbdelkaderTk/go-shop/internal/cart/repository"
	catalog "github.com/AbdelkaderTk/go-shop/internal/catalog/domain"
	catalogrepo "github.com/AbdelkaderTk/go-shop/internal/catalog/repository"
	"golang.org/x/sync/singleflight"
)

// ErrProductUnavailable marks a cart line whose product no longer exists in
// the catalog. The whole projection fails; nothing is silently dropped.
var ErrProductUnavailable = errors.New("product unavailable")

// ProductFinder is the slice of the catalog store the cart engine needs.
type ProductFinder interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

type CartService struct {
	repo     repository.CartRepository
	cache    cache.CartCache
	products ProductFinder
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, products ProductFinder) *CartService {
	return &CartService{
		repo:     repo,
		cache:    cache,
		products: products,
	}
}

// GetCart returns the user's cart, read through the cache. Concurrent
// lookups for the same user collapse into one fetch; a user with no stored
// cart gets an empty one.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// a broken cache degrades to a repo read
			log.Printf("cart cache read error: %v", err)
		}
		return s.loadCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// loadCart fetches from the repository and warms the cache off the request
// path.
func (s *CartService) loadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(warmCtx, userID, cart); err != nil {
			log.Printf("cart cache warm error: %v", err)
		}
	}()

	return cart, nil
}

// AddToCart merges the product into the user's cart: an existing line gets
// +1 quantity, otherwise a new line with quantity 1 is appended. The whole
// cart is read, modified and written back in one pass; concurrent adds for
// the same user are last-writer-wins.
func (s *CartService) AddToCart(ctx context.Context, userID string, productID int64) (*domain.Cart, error) {
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = &domain.Cart{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	s.invalidateCache(userID)
	return cart, nil
}

// RemoveFromCart drops the line item entirely, whatever its quantity.
// Removing an absent item is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, userID string, productID int64) error {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		log.Printf("repo remove item error: %v \n", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		log.Printf("repo clear cart error: %v \n", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// ProjectCart resolves every cart line against the catalog, returning
// (product, quantity) pairs with live prices. A line whose product has been
// deleted fails the projection with ErrProductUnavailable.
func (s *CartService) ProjectCart(ctx context.Context, userID string) ([]domain.ResolvedItem, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("project cart: %w", err)
	}

	resolved := make([]domain.ResolvedItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, catalogrepo.ErrProductNotFound) {
			return nil, fmt.Errorf("project cart: product %d: %w", item.ProductID, ErrProductUnavailable)
		}
		if err != nil {
			return nil, fmt.Errorf("project cart: product %d: %w", item.ProductID, err)
		}
		resolved = append(resolved, domain.ResolvedItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}

	return resolved, nil
}

// invalidateCache drops the cached copy after a write. Failures are logged;
// the entry expires on its own soon enough.
func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}
