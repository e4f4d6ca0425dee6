package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rowanvale/embla/internal/domain"
)

// CheckoutHandler exposes checkout over JSON.
type CheckoutHandler struct {
	service  domain.CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service domain.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type placeOrderRequest struct {
	ShippingAddress struct {
		Address    string `json:"address" validate:"required"`
		City       string `json:"city" validate:"required"`
		PostalCode string `json:"postalCode" validate:"required"`
		Country    string `json:"country" validate:"required"`
	} `json:"shippingAddress" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// PlaceOrder handles POST /api/orders.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "", "Shipping address and payment method are required"))
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), domain.PlaceOrderParams{
		UserID: userID,
		ShippingAddress: domain.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// QuoteTotals handles GET /api/checkout/totals.
func (h *CheckoutHandler) QuoteTotals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	totals, err := h.service.QuoteTotals(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}
