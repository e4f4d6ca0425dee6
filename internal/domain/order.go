package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ORDER DOMAIN ERRORS
// =============================================================================

var (
	ErrOrderNotFound       = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrEmptyCart           = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrPaymentNotSucceeded = &Error{Code: EPAYMENT, Message: "Payment has not succeeded"}
	ErrOrderAlreadyPaid    = &Error{Code: ECONFLICT, Message: "Order already paid"}
	ErrMissingAddress      = &Error{Code: EINVALID, Message: "Shipping address is incomplete"}
)

// CheckoutService converts a cart snapshot into an immutable order.
type CheckoutService interface {
	// PlaceOrder prices the user's cart, creates the order, and clears the
	// cart in the same transaction. An empty cart is rejected and left
	// untouched.
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error)

	// QuoteTotals prices the cart without creating an order, for the
	// checkout summary the frontend renders before submission.
	QuoteTotals(ctx context.Context, userID uuid.UUID) (*OrderTotals, error)
}

// OrderService provides read and state-transition operations for orders.
type OrderService interface {
	// GetOrder retrieves a single order by ID.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)

	// ListUserOrders returns a user's orders, newest first.
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// ListOrders returns all orders, newest first (admin).
	ListOrders(ctx context.Context) ([]Order, error)

	// CreatePaymentIntent opens a payment attempt for an unpaid order with
	// the billing provider, charging the order's total. The returned client
	// secret lets the frontend confirm the payment.
	CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*OrderPaymentIntent, error)

	// MarkPaid flips isPaid after verifying the payment with the billing
	// provider. Idempotent calls on a paid order conflict.
	MarkPaid(ctx context.Context, orderID uuid.UUID, paymentIntentID string) (*Order, error)

	// MarkDelivered flips isDelivered (admin action).
	MarkDelivered(ctx context.Context, orderID uuid.UUID) (*Order, error)
}

// PlaceOrderParams carries the buyer's checkout submission.
type PlaceOrderParams struct {
	UserID          uuid.UUID
	ShippingAddress ShippingAddress
	PaymentMethod   string
}

// ShippingAddress is supplied by the buyer at checkout.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderPaymentIntent is the client-facing view of a payment attempt opened
// for an order. AmountCents is the order total in the smallest currency unit.
type OrderPaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentResult captures the billing provider's confirmation when an order
// is marked paid.
type PaymentResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Email  string `json:"email_address,omitempty"`
}

// OrderItem is an immutable copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID uuid.UUID `json:"product"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
	Image     string    `json:"image"`
}

// OrderTotals is the pricing breakdown computed once at checkout.
type OrderTotals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Order is the snapshot of a cart plus computed shipping and tax. Pricing
// fields are computed once at creation and never re-derived; isPaid and
// isDelivered are flipped by separate actions.
type Order struct {
	ID              uuid.UUID       `json:"_id"`
	UserID          uuid.UUID       `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
