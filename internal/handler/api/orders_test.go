package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/middleware"
	"github.com/rowanvale/embla/internal/router"
)

// mockOrderService implements domain.OrderService with function fields.
type mockOrderService struct {
	GetOrderFunc            func(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListUserOrdersFunc      func(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListOrdersFunc          func(ctx context.Context) ([]domain.Order, error)
	CreatePaymentIntentFunc func(ctx context.Context, orderID uuid.UUID) (*domain.OrderPaymentIntent, error)
	MarkPaidFunc            func(ctx context.Context, orderID uuid.UUID, paymentIntentID string) (*domain.Order, error)
	MarkDeliveredFunc       func(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return m.GetOrderFunc(ctx, orderID)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return m.ListUserOrdersFunc(ctx, userID)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return m.ListOrdersFunc(ctx)
}

func (m *mockOrderService) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*domain.OrderPaymentIntent, error) {
	return m.CreatePaymentIntentFunc(ctx, orderID)
}

func (m *mockOrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentIntentID string) (*domain.Order, error) {
	return m.MarkPaidFunc(ctx, orderID, paymentIntentID)
}

func (m *mockOrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return m.MarkDeliveredFunc(ctx, orderID)
}

func newOrderRouter(svc domain.OrderService) *router.Router {
	h := NewOrderHandler(svc, nil)
	r := router.New(middleware.WithUser)
	r.Get("/api/orders/{orderID}", h.GetOrder)
	r.Post("/api/orders/{orderID}/payment-intent", h.CreatePaymentIntent)
	return r
}

func TestOrderHandler_CreatePaymentIntent(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := &mockOrderService{
		GetOrderFunc: func(ctx context.Context, gotOrder uuid.UUID) (*domain.Order, error) {
			assert.Equal(t, orderID, gotOrder)
			return &domain.Order{ID: orderID, UserID: userID, TotalPrice: 862.49}, nil
		},
		CreatePaymentIntentFunc: func(ctx context.Context, gotOrder uuid.UUID) (*domain.OrderPaymentIntent, error) {
			assert.Equal(t, orderID, gotOrder)
			return &domain.OrderPaymentIntent{
				ID:           "pi_123",
				ClientSecret: "secret_123",
				AmountCents:  86249,
				Currency:     "usd",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/payment-intent", nil)
	req.Header.Set(middleware.UserIDHeader, userID.String())
	w := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		ID           string `json:"id"`
		ClientSecret string `json:"clientSecret"`
		Amount       int64  `json:"amount"`
		Currency     string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pi_123", body.ID)
	assert.Equal(t, "secret_123", body.ClientSecret)
	assert.Equal(t, int64(86249), body.Amount)
	assert.Equal(t, "usd", body.Currency)
}

func TestOrderHandler_CreatePaymentIntent_OtherUsersOrder(t *testing.T) {
	orderID := uuid.New()
	svc := &mockOrderService{
		GetOrderFunc: func(ctx context.Context, gotOrder uuid.UUID) (*domain.Order, error) {
			return &domain.Order{ID: orderID, UserID: uuid.New()}, nil
		},
		CreatePaymentIntentFunc: func(ctx context.Context, gotOrder uuid.UUID) (*domain.OrderPaymentIntent, error) {
			t.Fatal("payment intent created for another user's order")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/payment-intent", nil)
	req.Header.Set(middleware.UserIDHeader, uuid.New().String())
	w := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(w, req)

	// Another user's order reads as absent.
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_CreatePaymentIntent_NoUser(t *testing.T) {
	svc := &mockOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+uuid.New().String()+"/payment-intent", nil)
	w := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
