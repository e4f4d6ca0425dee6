package shipping

import (
	"context"
)

// Mock is a shipping quoter for testing. If QuoteFunc is nil, Quote returns
// a zero-cost rate.
type Mock struct {
	QuoteFunc func(ctx context.Context, params QuoteParams) (*Rate, error)
	Calls     []QuoteParams
}

// Quote records the call and delegates to QuoteFunc.
func (m *Mock) Quote(ctx context.Context, params QuoteParams) (*Rate, error) {
	m.Calls = append(m.Calls, params)
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, params)
	}
	return &Rate{}, nil
}
