package tax

import (
	"context"
)

// Mock is a tax calculator for testing. If CalculateFunc is nil, Calculate
// returns a zero result.
type Mock struct {
	CalculateFunc func(ctx context.Context, params Params) (*Result, error)
	Calls         []Params
}

// Calculate records the call and delegates to CalculateFunc.
func (m *Mock) Calculate(ctx context.Context, params Params) (*Result, error) {
	m.Calls = append(m.Calls, params)
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, params)
	}
	return &Result{}, nil
}
