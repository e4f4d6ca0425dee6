package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
)

// ErrCacheMiss is returned when no cached cart exists for a user.
var ErrCacheMiss = errors.New("cache miss")

// CartCache caches per-user cart reads. Mutation paths invalidate; only the
// read path populates, so the database stays the source of truth.
type CartCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Set(ctx context.Context, userID uuid.UUID, cart *domain.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
