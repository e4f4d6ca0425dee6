package tax

import (
	"context"
)

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator, Mock.
type Calculator interface {
	// Calculate computes tax for an order's items subtotal.
	// Amounts are dollar values; results are rounded to cents.
	Calculate(ctx context.Context, params Params) (*Result, error)
}

// Params contains the information needed for tax calculation.
type Params struct {
	// ItemsPrice is the order's items subtotal in dollars.
	ItemsPrice float64

	// ShippingAddress is carried for jurisdiction-aware implementations.
	ShippingAddress Address
}

// Address represents a shipping address for tax purposes.
type Address struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Result contains the calculated tax.
type Result struct {
	// Amount is the tax in dollars, rounded to cents.
	Amount float64

	// Rate is the rate that produced Amount (0.15 for 15%).
	Rate float64
}
