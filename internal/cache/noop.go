package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
)

// NoopCache satisfies CartCache without caching anything. Used when no Redis
// address is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, userID uuid.UUID, cart *domain.Cart) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return nil
}
