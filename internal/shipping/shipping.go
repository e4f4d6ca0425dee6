package shipping

import (
	"context"
)

// Quoter defines the interface for shipping cost calculation.
// Implementations: ThresholdQuoter, Mock. Carrier-rate integrations would
// also satisfy this interface.
type Quoter interface {
	// Quote returns the shipping cost in dollars for an order with the
	// given items subtotal and destination.
	Quote(ctx context.Context, params QuoteParams) (*Rate, error)
}

// QuoteParams contains parameters for quoting shipping.
type QuoteParams struct {
	// ItemsPrice is the order's items subtotal in dollars.
	ItemsPrice float64

	// Destination is carried for carrier-aware implementations.
	Destination Destination
}

// Destination is the delivery address for rate calculation.
type Destination struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Rate is a quoted shipping cost.
type Rate struct {
	// Cost is the shipping price in dollars.
	Cost float64

	// ServiceName describes the rate ("Flat Rate", "Free Shipping").
	ServiceName string
}
