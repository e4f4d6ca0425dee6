package tax

import (
	"context"
)

// NoTaxCalculator always returns zero tax. Useful for development and for
// jurisdictions without sales tax.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a calculator that charges no tax.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// Calculate returns a zero-amount result.
func (c *NoTaxCalculator) Calculate(ctx context.Context, params Params) (*Result, error) {
	return &Result{Amount: 0, Rate: 0}, nil
}
