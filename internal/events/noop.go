package events

import (
	"context"
)

// NoopPublisher discards all events. Used in development when no NATS URL is
// configured, and in tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error { return nil }

func (NoopPublisher) PublishOrderPaid(ctx context.Context, event OrderPaid) error { return nil }

func (NoopPublisher) PublishOrderDelivered(ctx context.Context, event OrderDelivered) error {
	return nil
}

func (NoopPublisher) Close() {}
