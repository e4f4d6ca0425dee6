package api

import (
	"log/slog"
	"net/http"

	"github.com/rowanvale/embla/internal/domain"
)

// OrderHandler exposes order reads and state transitions over JSON.
type OrderHandler struct {
	service domain.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service domain.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{service: service, logger: logger}
}

type markPaidRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// GetOrder handles GET /api/orders/{orderID}. Buyers see only their own
// orders.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "orderID")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if order.UserID != userID {
		// Report absence rather than existence of another user's order.
		respondError(w, r, domain.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ListMyOrders handles GET /api/orders/mine.
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListUserOrders(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// ListOrders handles GET /api/admin/orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// CreatePaymentIntent handles POST /api/orders/{orderID}/payment-intent.
// It opens a payment attempt for the buyer's own unpaid order.
func (h *OrderHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "orderID")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if order.UserID != userID {
		respondError(w, r, domain.ErrOrderNotFound)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, intent)
}

// MarkPaid handles PUT /api/orders/{orderID}/pay.
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "orderID")
	if !ok {
		return
	}

	var req markPaidRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if order.UserID != userID {
		respondError(w, r, domain.ErrOrderNotFound)
		return
	}

	order, err = h.service.MarkPaid(r.Context(), orderID, req.PaymentIntentID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// MarkDelivered handles PUT /api/admin/orders/{orderID}/deliver.
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "orderID")
	if !ok {
		return
	}

	order, err := h.service.MarkDelivered(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
