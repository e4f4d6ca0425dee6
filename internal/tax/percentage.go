package tax

import (
	"context"

	"github.com/rowanvale/embla/internal/domain"
)

// DefaultRate matches the storefront's flat 15% sales tax.
const DefaultRate = 0.15

// PercentageCalculator applies a flat percentage rate to the items subtotal.
type PercentageCalculator struct {
	rate float64
}

// NewPercentageCalculator creates a percentage-based tax calculator.
// A negative rate is treated as zero.
func NewPercentageCalculator(rate float64) Calculator {
	if rate < 0 {
		rate = 0
	}
	return &PercentageCalculator{rate: rate}
}

// Calculate computes round2(itemsPrice * rate). Rounding happens here, at
// computation time, so persisted and displayed amounts agree.
func (c *PercentageCalculator) Calculate(ctx context.Context, params Params) (*Result, error) {
	return &Result{
		Amount: domain.RoundCents(params.ItemsPrice * c.rate),
		Rate:   c.rate,
	}, nil
}
