package shipping

import (
	"context"
)

// Storefront defaults: flat $10 shipping, free on orders over $100.
const (
	DefaultFlatRate      = 10.0
	DefaultFreeThreshold = 100.0
)

// ThresholdQuoter charges a flat rate, waived when the items subtotal
// exceeds the free-shipping threshold. The threshold is strict: an order of
// exactly the threshold amount still pays shipping.
type ThresholdQuoter struct {
	flatRate      float64
	freeThreshold float64
}

// NewThresholdQuoter creates a flat-rate quoter with a free-shipping
// threshold.
func NewThresholdQuoter(flatRate, freeThreshold float64) Quoter {
	return &ThresholdQuoter{
		flatRate:      flatRate,
		freeThreshold: freeThreshold,
	}
}

// Quote applies the threshold policy to the items subtotal.
func (q *ThresholdQuoter) Quote(ctx context.Context, params QuoteParams) (*Rate, error) {
	if params.ItemsPrice > q.freeThreshold {
		return &Rate{Cost: 0, ServiceName: "Free Shipping"}, nil
	}
	return &Rate{Cost: q.flatRate, ServiceName: "Flat Rate"}, nil
}
