package billing

import (
	"context"
	"time"
)

// PaymentStatus values mirror the provider's payment intent lifecycle.
const (
	StatusSucceeded  = "succeeded"
	StatusProcessing = "processing"
	StatusCanceled   = "canceled"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with a client secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent. Used to verify
	// payment before an order is marked paid.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in the smallest currency unit.
	AmountCents int64

	// Currency code (ISO 4217), e.g. "usd".
	Currency string

	// Metadata is attached to the intent for reconciliation (order id,
	// user id).
	Metadata map[string]string
}

// PaymentIntent represents a payment attempt with the provider.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
	ReceiptEmail string
	Metadata     map[string]string
	CreatedAt    time.Time
}
