package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subjects for published events.
const (
	SubjectOrderCreated   = "orders.created"
	SubjectOrderPaid      = "orders.paid"
	SubjectOrderDelivered = "orders.delivered"
)

// Publisher emits order lifecycle events for downstream consumers
// (confirmation email, analytics). Publishing is best-effort: callers log
// failures but never fail the originating request on one.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	PublishOrderPaid(ctx context.Context, event OrderPaid) error
	PublishOrderDelivered(ctx context.Context, event OrderDelivered) error

	// Close releases the underlying connection.
	Close()
}

// OrderCreated is emitted after checkout commits.
type OrderCreated struct {
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	ItemCount  int       `json:"item_count"`
	TotalPrice float64   `json:"total_price"`
	PlacedAt   time.Time `json:"placed_at"`
}

// OrderPaid is emitted when a payment is confirmed.
type OrderPaid struct {
	OrderID         uuid.UUID `json:"order_id"`
	UserID          uuid.UUID `json:"user_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	PaidAt          time.Time `json:"paid_at"`
}

// OrderDelivered is emitted when an order is marked delivered.
type OrderDelivered struct {
	OrderID     uuid.UUID `json:"order_id"`
	UserID      uuid.UUID `json:"user_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}
