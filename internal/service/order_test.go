package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/embla/internal/billing"
	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/events"
)

func newOrderFixture(t *testing.T) (domain.OrderService, *memOrderStore, *billing.MockProvider) {
	t.Helper()
	carts := newMemCartStore()
	orders := newMemOrderStore(carts)
	provider := billing.NewMockProvider()
	svc := NewOrderService(orders, provider, events.NoopPublisher{}, testMetrics(), testLogger())
	return svc, orders, provider
}

func seedOrder(orders *memOrderStore, userID uuid.UUID) *domain.Order {
	order := &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		OrderItems: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Espresso Machine", Price: 749.99, Qty: 1},
		},
		ShippingAddress: domain.ShippingAddress{
			Address: "12 Harbor Lane", City: "Portland", PostalCode: "97209", Country: "USA",
		},
		PaymentMethod: "Stripe",
		ItemsPrice:    749.99,
		ShippingPrice: 0,
		TaxPrice:      112.50,
		TotalPrice:    862.49,
		CreatedAt:     time.Now().UTC(),
	}
	orders.mu.Lock()
	orders.orders[order.ID] = order
	orders.mu.Unlock()
	return order
}

func TestOrderService_GetOrder(t *testing.T) {
	svc, orders, _ := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	order, err := svc.GetOrder(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, order.ID)
	assert.Equal(t, 862.49, order.TotalPrice)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_ListUserOrders(t *testing.T) {
	svc, orders, _ := newOrderFixture(t)
	userID := uuid.New()
	seedOrder(orders, userID)
	seedOrder(orders, userID)
	seedOrder(orders, uuid.New())

	mine, err := svc.ListUserOrders(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderService_CreatePaymentIntent(t *testing.T) {
	svc, orders, provider := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	intent, err := svc.CreatePaymentIntent(context.Background(), seeded.ID)
	require.NoError(t, err)

	// The 862.49 total charges as 86249 cents.
	assert.Equal(t, int64(86249), intent.AmountCents)
	assert.Equal(t, "usd", intent.Currency)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Contains(t, provider.CallLog, "CreatePaymentIntent(86249, usd)")

	pi := provider.PaymentIntents[intent.ID]
	require.NotNil(t, pi)
	assert.Equal(t, seeded.ID.String(), pi.Metadata["order_id"])
	assert.Equal(t, seeded.UserID.String(), pi.Metadata["user_id"])

	// The intent it opened verifies when the order is marked paid.
	order, err := svc.MarkPaid(context.Background(), seeded.ID, intent.ID)
	require.NoError(t, err)
	assert.True(t, order.IsPaid)
}

func TestOrderService_CreatePaymentIntent_CentsConversion(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		cents int64
	}{
		{"flat shipping order", 67.50, 6750},
		{"free shipping order", 862.49, 86249},
		{"summed components", 70.97 + 10.00 + 10.65, 9162},
		{"whole dollars", 120.00, 12000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, _ := newOrderFixture(t)
			seeded := seedOrder(orders, uuid.New())
			orders.mu.Lock()
			orders.orders[seeded.ID].TotalPrice = tt.total
			orders.mu.Unlock()

			intent, err := svc.CreatePaymentIntent(context.Background(), seeded.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.cents, intent.AmountCents)
		})
	}
}

func TestOrderService_CreatePaymentIntent_AlreadyPaid(t *testing.T) {
	svc, orders, provider := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	now := time.Now().UTC()
	orders.mu.Lock()
	orders.orders[seeded.ID].IsPaid = true
	orders.orders[seeded.ID].PaidAt = &now
	orders.mu.Unlock()

	_, err := svc.CreatePaymentIntent(context.Background(), seeded.ID)
	require.ErrorIs(t, err, domain.ErrOrderAlreadyPaid)
	assert.Empty(t, provider.CallLog)
}

func TestOrderService_CreatePaymentIntent_NotFound(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.CreatePaymentIntent(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_MarkPaid(t *testing.T) {
	svc, orders, provider := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	pi, err := provider.CreatePaymentIntent(context.Background(), billing.CreatePaymentIntentParams{
		AmountCents: 86249,
		Currency:    "usd",
	})
	require.NoError(t, err)

	order, err := svc.MarkPaid(context.Background(), seeded.ID, pi.ID)
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, pi.ID, order.PaymentResult.ID)
	assert.Equal(t, billing.StatusSucceeded, order.PaymentResult.Status)
	assert.Contains(t, provider.CallLog, "GetPaymentIntent("+pi.ID+")")
}

func TestOrderService_MarkPaid_NotSucceeded(t *testing.T) {
	svc, orders, provider := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	provider.GetPaymentIntentFunc = func(ctx context.Context, paymentIntentID string) (*billing.PaymentIntent, error) {
		return &billing.PaymentIntent{ID: paymentIntentID, Status: billing.StatusProcessing}, nil
	}

	_, err := svc.MarkPaid(context.Background(), seeded.ID, "pi_pending")
	require.ErrorIs(t, err, domain.ErrPaymentNotSucceeded)

	// The order stays unpaid.
	order, err := svc.GetOrder(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
}

func TestOrderService_MarkPaid_AlreadyPaid(t *testing.T) {
	svc, orders, provider := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	pi, err := provider.CreatePaymentIntent(context.Background(), billing.CreatePaymentIntentParams{
		AmountCents: 86249,
		Currency:    "usd",
	})
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), seeded.ID, pi.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), seeded.ID, pi.ID)
	require.ErrorIs(t, err, domain.ErrOrderAlreadyPaid)
}

func TestOrderService_MarkPaid_Validation(t *testing.T) {
	svc, orders, _ := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	_, err := svc.MarkPaid(context.Background(), seeded.ID, "")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.MarkPaid(context.Background(), uuid.New(), "pi_any")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_MarkDelivered(t *testing.T) {
	svc, orders, _ := newOrderFixture(t)
	seeded := seedOrder(orders, uuid.New())

	order, err := svc.MarkDelivered(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)

	_, err = svc.MarkDelivered(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
