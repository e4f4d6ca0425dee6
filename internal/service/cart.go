package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/cache"
	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/telemetry"
)

// cartService implements domain.CartService. All mutations funnel through the
// store's MutateCart so that totals are recomputed and persisted atomically
// with the item change.
type cartService struct {
	store    CartStore
	products ProductStore
	cache    cache.CartCache
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// NewCartService creates a new CartService instance.
func NewCartService(store CartStore, products ProductStore, cartCache cache.CartCache, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.CartService {
	return &cartService{
		store:    store,
		products: products,
		cache:    cartCache,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetCart returns the user's cart, or an empty cart with zero totals when
// none has been created yet.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if cached, err := s.cache.Get(ctx, userID); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cart cache read failed", "user_id", userID, "error", err)
	}

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.EmptyCart(userID), nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	s.cacheSet(ctx, cart)
	return cart, nil
}

// AddItem adds quantity units of a product to the cart, merging with an
// existing line for the same product. The cart is created on first use.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if productID == uuid.Nil {
		return nil, domain.ErrMissingProductID
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	cart, err := s.store.MutateCart(ctx, userID, true, func(c *domain.Cart) error {
		if i := c.FindItem(productID); i >= 0 {
			c.Items[i].Quantity += quantity
			return nil
		}
		c.Items = append(c.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Brand:     product.Brand,
			Price:     product.Price,
			Quantity:  quantity,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.afterMutation(ctx, cart, "add")
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing cart line to an absolute
// value. The product must already be in the cart.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.store.MutateCart(ctx, userID, false, func(c *domain.Cart) error {
		i := c.FindItem(productID)
		if i < 0 {
			return domain.ErrCartItemNotFound
		}
		c.Items[i].Quantity = quantity
		return nil
	})
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	s.afterMutation(ctx, cart, "update")
	return cart, nil
}

// RemoveItem deletes a product's line from the cart. Removing a product that
// is not in the cart leaves the cart unchanged.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.store.MutateCart(ctx, userID, false, func(c *domain.Cart) error {
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		c.Items = kept
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	s.afterMutation(ctx, cart, "remove")
	return cart, nil
}

// ClearCart removes every item and resets totals to zero. Clearing an absent
// cart succeeds and returns an empty cart.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.store.MutateCart(ctx, userID, false, func(c *domain.Cart) error {
		c.Items = nil
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			s.cacheInvalidate(ctx, userID)
			return domain.EmptyCart(userID), nil
		}
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.afterMutation(ctx, cart, "clear")
	return cart, nil
}

func (s *cartService) afterMutation(ctx context.Context, cart *domain.Cart, op string) {
	if s.metrics != nil {
		s.metrics.CartOperations.WithLabelValues(op).Inc()
		s.metrics.CartValue.Observe(cart.TotalPrice)
	}
	s.cacheInvalidate(ctx, cart.UserID)
}

func (s *cartService) cacheSet(ctx context.Context, cart *domain.Cart) {
	if err := s.cache.Set(ctx, cart.UserID, cart); err != nil {
		s.logger.Warn("cart cache write failed", "user_id", cart.UserID, "error", err)
	}
}

func (s *cartService) cacheInvalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("cart cache invalidation failed", "user_id", userID, "error", err)
	}
}
