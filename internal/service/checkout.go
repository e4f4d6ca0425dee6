package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/cache"
	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/events"
	"github.com/rowanvale/embla/internal/shipping"
	"github.com/rowanvale/embla/internal/tax"
	"github.com/rowanvale/embla/internal/telemetry"
)

// checkoutService implements domain.CheckoutService. Pricing happens exactly
// once, inside the store's cart lock, so the order snapshot and the cleared
// cart commit together.
type checkoutService struct {
	orders    OrderStore
	carts     CartStore
	quoter    shipping.Quoter
	tax       tax.Calculator
	cache     cache.CartCache
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(orders OrderStore, carts CartStore, quoter shipping.Quoter, taxCalc tax.Calculator, cartCache cache.CartCache, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.CheckoutService {
	return &checkoutService{
		orders:    orders,
		carts:     carts,
		quoter:    quoter,
		tax:       taxCalc,
		cache:     cartCache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// PlaceOrder prices the user's cart, creates the order, and clears the cart
// in a single transaction. The cart is left untouched on any failure.
func (s *checkoutService) PlaceOrder(ctx context.Context, params domain.PlaceOrderParams) (*domain.Order, error) {
	if params.PaymentMethod == "" {
		return nil, domain.Errorf(domain.EINVALID, "", "Payment method is required")
	}
	if err := validateAddress(params.ShippingAddress); err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrderFromCart(ctx, params.UserID, func(cart *domain.Cart) (*domain.Order, error) {
		if len(cart.Items) == 0 {
			return nil, domain.ErrEmptyCart
		}

		totals, err := s.priceCart(ctx, cart, params.ShippingAddress)
		if err != nil {
			return nil, err
		}

		items := make([]domain.OrderItem, len(cart.Items))
		for i, line := range cart.Items {
			items[i] = domain.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Qty:       line.Quantity,
				Image:     line.Image,
			}
		}

		return &domain.Order{
			ID:              uuid.New(),
			UserID:          params.UserID,
			OrderItems:      items,
			ShippingAddress: params.ShippingAddress,
			PaymentMethod:   params.PaymentMethod,
			ItemsPrice:      totals.ItemsPrice,
			ShippingPrice:   totals.ShippingPrice,
			TaxPrice:        totals.TaxPrice,
			TotalPrice:      totals.TotalPrice,
			CreatedAt:       time.Now().UTC(),
		}, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) || errors.Is(err, domain.ErrCartNotFound) {
			if s.metrics != nil {
				s.metrics.CheckoutRejected.WithLabelValues("empty_cart").Inc()
			}
			return nil, domain.ErrEmptyCart
		}
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.cache.Delete(ctx, params.UserID); err != nil {
		s.logger.Warn("cart cache invalidation failed", "user_id", params.UserID, "error", err)
	}

	itemCount := 0
	for _, item := range order.OrderItems {
		itemCount += item.Qty
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
		s.metrics.OrderValue.Observe(order.TotalPrice)
		s.metrics.OrderItemCount.Observe(float64(itemCount))
	}

	created := events.OrderCreated{
		OrderID:    order.ID,
		UserID:     order.UserID,
		ItemCount:  itemCount,
		TotalPrice: order.TotalPrice,
		PlacedAt:   order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, created); err != nil {
		s.logger.Warn("order created event not published", "order_id", order.ID, "error", err)
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.TotalPrice,
	)
	return order, nil
}

// QuoteTotals prices the cart without creating an order.
func (s *checkoutService) QuoteTotals(ctx context.Context, userID uuid.UUID) (*domain.OrderTotals, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	return s.priceCart(ctx, cart, domain.ShippingAddress{})
}

// priceCart derives shipping, tax, and grand total from the cart's items
// total. Each component is rounded to cents before summing.
func (s *checkoutService) priceCart(ctx context.Context, cart *domain.Cart, dest domain.ShippingAddress) (*domain.OrderTotals, error) {
	itemsPrice := cart.TotalPrice

	rate, err := s.quoter.Quote(ctx, shipping.QuoteParams{
		ItemsPrice: itemsPrice,
		Destination: shipping.Destination{
			Address:    dest.Address,
			City:       dest.City,
			PostalCode: dest.PostalCode,
			Country:    dest.Country,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quote shipping: %w", err)
	}

	taxResult, err := s.tax.Calculate(ctx, tax.Params{
		ItemsPrice: itemsPrice,
		ShippingAddress: tax.Address{
			Address:    dest.Address,
			City:       dest.City,
			PostalCode: dest.PostalCode,
			Country:    dest.Country,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax: %w", err)
	}

	return &domain.OrderTotals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: rate.Cost,
		TaxPrice:      taxResult.Amount,
		TotalPrice:    domain.RoundCents(itemsPrice + rate.Cost + taxResult.Amount),
	}, nil
}

func validateAddress(addr domain.ShippingAddress) error {
	if addr.Address == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		return domain.ErrMissingAddress
	}
	return nil
}
