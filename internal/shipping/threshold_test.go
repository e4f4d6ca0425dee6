package shipping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/embla/internal/shipping"
)

func Test_ThresholdQuoter(t *testing.T) {
	tests := []struct {
		name       string
		itemsPrice float64
		wantCost   float64
		wantName   string
	}{
		{
			name:       "under threshold pays flat rate",
			itemsPrice: 50,
			wantCost:   10,
			wantName:   "Flat Rate",
		},
		{
			name:       "over threshold ships free",
			itemsPrice: 749.99,
			wantCost:   0,
			wantName:   "Free Shipping",
		},
		{
			name:       "exactly at threshold still pays",
			itemsPrice: 100,
			wantCost:   10,
			wantName:   "Flat Rate",
		},
		{
			name:       "a cent over the threshold ships free",
			itemsPrice: 100.01,
			wantCost:   0,
			wantName:   "Free Shipping",
		},
		{
			name:       "zero subtotal pays flat rate",
			itemsPrice: 0,
			wantCost:   10,
			wantName:   "Flat Rate",
		},
	}

	quoter := shipping.NewThresholdQuoter(shipping.DefaultFlatRate, shipping.DefaultFreeThreshold)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := quoter.Quote(context.Background(), shipping.QuoteParams{ItemsPrice: tt.itemsPrice})

			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, rate.Cost)
			assert.Equal(t, tt.wantName, rate.ServiceName)
		})
	}
}

func Test_ThresholdQuoter_CustomPolicy(t *testing.T) {
	quoter := shipping.NewThresholdQuoter(5, 25)

	rate, err := quoter.Quote(context.Background(), shipping.QuoteParams{ItemsPrice: 20})
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate.Cost)

	rate, err = quoter.Quote(context.Background(), shipping.QuoteParams{ItemsPrice: 30})
	require.NoError(t, err)
	assert.Zero(t, rate.Cost)
}
