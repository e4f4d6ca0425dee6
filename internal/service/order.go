package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/billing"
	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/events"
	"github.com/rowanvale/embla/internal/telemetry"
)

// orderService implements domain.OrderService.
type orderService struct {
	store     OrderStore
	billing   billing.Provider
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store OrderStore, billingProvider billing.Provider, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.OrderService {
	return &orderService{
		store:     store,
		billing:   billingProvider,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetOrder retrieves a single order by ID.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListUserOrders returns a user's orders, newest first.
func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CreatePaymentIntent opens a payment attempt for an unpaid order. The
// charge amount is the order total converted to cents; totals are stored in
// dollars and carry at most two decimal places, so the conversion is exact.
func (s *orderService) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*domain.OrderPaymentIntent, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.IsPaid {
		return nil, domain.ErrOrderAlreadyPaid
	}

	intent, err := s.billing.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents: dollarsToCents(order.TotalPrice),
		Currency:    "usd",
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  order.UserID.String(),
		},
	})
	if err != nil {
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Info("payment intent created",
		"order_id", order.ID,
		"payment_intent_id", intent.ID,
		"amount_cents", intent.AmountCents,
	)
	return &domain.OrderPaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.AmountCents,
		Currency:     intent.Currency,
	}, nil
}

// dollarsToCents converts a rounded dollar amount to the smallest currency
// unit. Rounding guards against float drift in sums like 91.62 stored as
// 91.61999....
func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// MarkPaid verifies the payment intent with the billing provider and records
// the payment on the order. A second call on a paid order conflicts.
func (s *orderService) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentIntentID string) (*domain.Order, error) {
	if paymentIntentID == "" {
		return nil, domain.Errorf(domain.EINVALID, "", "Payment intent ID is required")
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.IsPaid {
		return nil, domain.ErrOrderAlreadyPaid
	}

	intent, err := s.billing.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment intent: %w", err)
	}
	if intent.Status != billing.StatusSucceeded {
		s.logger.Warn("payment verification rejected",
			"order_id", orderID,
			"payment_intent_id", paymentIntentID,
			"status", intent.Status,
		)
		return nil, domain.ErrPaymentNotSucceeded
	}

	order, err = s.store.SetOrderPaid(ctx, orderID, domain.PaymentResult{
		ID:     intent.ID,
		Status: intent.Status,
		Email:  intent.ReceiptEmail,
	})
	if err != nil {
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersPaid.Inc()
	}

	paidAt := time.Now().UTC()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}
	if err := s.publisher.PublishOrderPaid(ctx, events.OrderPaid{
		OrderID:         order.ID,
		UserID:          order.UserID,
		PaymentIntentID: paymentIntentID,
		PaidAt:          paidAt,
	}); err != nil {
		s.logger.Warn("order paid event not published", "order_id", order.ID, "error", err)
	}

	s.logger.Info("order marked paid", "order_id", order.ID, "payment_intent_id", paymentIntentID)
	return order, nil
}

// MarkDelivered flips the delivered flag on an order.
func (s *orderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.store.SetOrderDelivered(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersDelivered.Inc()
	}

	deliveredAt := time.Now().UTC()
	if order.DeliveredAt != nil {
		deliveredAt = *order.DeliveredAt
	}
	if err := s.publisher.PublishOrderDelivered(ctx, events.OrderDelivered{
		OrderID:     order.ID,
		UserID:      order.UserID,
		DeliveredAt: deliveredAt,
	}); err != nil {
		s.logger.Warn("order delivered event not published", "order_id", order.ID, "error", err)
	}

	return order, nil
}
