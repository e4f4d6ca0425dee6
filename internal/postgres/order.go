package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/service"
)

// OrderStore implements service.OrderStore using PostgreSQL.
type OrderStore struct {
	store *Store
	carts *CartStore
}

var _ service.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a PostgreSQL-backed order store. It shares the cart
// store so checkout can snapshot and clear the cart in one transaction.
func NewOrderStore(store *Store, carts *CartStore) *OrderStore {
	return &OrderStore{store: store, carts: carts}
}

// CreateOrderFromCart locks the user's cart, invokes build to price and
// assemble the order, inserts the order with its items, and clears the cart.
// Everything commits or rolls back together; a build failure leaves the cart
// exactly as it was.
func (s *OrderStore) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, build func(*domain.Cart) (*domain.Order, error)) (*domain.Order, error) {
	var result *domain.Order

	err := s.store.inTx(ctx, func(tx pgx.Tx) error {
		cart := domain.EmptyCart(userID)
		row := tx.QueryRow(ctx,
			`SELECT total_items, total_price FROM carts WHERE user_id = $1 FOR UPDATE`,
			userID,
		)
		if err := row.Scan(&cart.TotalItems, &cart.TotalPrice); err != nil {
			if isNoRows(err) {
				return domain.ErrCartNotFound
			}
			return domain.Internal(err, "postgres.order.create", "failed to lock cart")
		}

		items, err := s.carts.loadItems(ctx, tx, userID)
		if err != nil {
			return domain.Internal(err, "postgres.order.create", "failed to load cart items")
		}
		cart.Items = items

		order, err := build(cart)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO orders (
				id, user_id, address, city, postal_code, country, payment_method,
				items_price, shipping_price, tax_price, total_price, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			order.ID, order.UserID,
			order.ShippingAddress.Address, order.ShippingAddress.City,
			order.ShippingAddress.PostalCode, order.ShippingAddress.Country,
			order.PaymentMethod,
			order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice,
			order.CreatedAt,
		)
		if err != nil {
			return domain.Internal(err, "postgres.order.create", "failed to insert order")
		}

		for i, item := range order.OrderItems {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, name, price, qty, image, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				order.ID, item.ProductID, item.Name, item.Price, item.Qty, item.Image, i,
			)
			if err != nil {
				return domain.Internal(err, "postgres.order.create", "failed to insert order item")
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_user_id = $1`, userID); err != nil {
			return domain.Internal(err, "postgres.order.create", "failed to clear cart items")
		}
		_, err = tx.Exec(ctx,
			`UPDATE carts SET total_items = 0, total_price = 0, updated_at = now() WHERE user_id = $1`,
			userID,
		)
		if err != nil {
			return domain.Internal(err, "postgres.order.create", "failed to reset cart totals")
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetOrder loads an order with its items.
func (s *OrderStore) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	row := s.store.pool.QueryRow(ctx, orderSelect+` WHERE id = $1`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "postgres.order.get", "failed to load order")
	}

	items, err := s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.order.get", "failed to load order items")
	}
	order.OrderItems = items
	return order, nil
}

// ListOrdersByUser returns a user's orders, newest first, items included.
func (s *OrderStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.listOrders(ctx, orderSelect+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListOrders returns all orders, newest first, items included.
func (s *OrderStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.listOrders(ctx, orderSelect+` ORDER BY created_at DESC`)
}

// SetOrderPaid records the payment on an unpaid order.
func (s *OrderStore) SetOrderPaid(ctx context.Context, orderID uuid.UUID, payment domain.PaymentResult) (*domain.Order, error) {
	now := time.Now().UTC()
	tag, err := s.store.pool.Exec(ctx,
		`UPDATE orders
		 SET is_paid = TRUE, paid_at = $2,
		     payment_id = $3, payment_status = $4, payment_email = $5
		 WHERE id = $1 AND is_paid = FALSE`,
		orderID, now, payment.ID, payment.Status, payment.Email,
	)
	if err != nil {
		return nil, domain.Internal(err, "postgres.order.set_paid", "failed to update order")
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing order from one already paid.
		existing, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if existing.IsPaid {
			return nil, domain.ErrOrderAlreadyPaid
		}
		return nil, domain.ErrOrderNotFound
	}
	return s.GetOrder(ctx, orderID)
}

// SetOrderDelivered flips the delivered flag.
func (s *OrderStore) SetOrderDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	now := time.Now().UTC()
	tag, err := s.store.pool.Exec(ctx,
		`UPDATE orders SET is_delivered = TRUE, delivered_at = $2 WHERE id = $1`,
		orderID, now,
	)
	if err != nil {
		return nil, domain.Internal(err, "postgres.order.set_delivered", "failed to update order")
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return s.GetOrder(ctx, orderID)
}

const orderSelect = `
	SELECT id, user_id, address, city, postal_code, country, payment_method,
	       items_price, shipping_price, tax_price, total_price,
	       is_paid, payment_id, payment_status, payment_email, paid_at,
	       is_delivered, delivered_at, created_at
	FROM orders`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var paymentID, paymentStatus, paymentEmail *string
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.PaymentMethod,
		&o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&o.IsPaid, &paymentID, &paymentStatus, &paymentEmail, &o.PaidAt,
		&o.IsDelivered, &o.DeliveredAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentID != nil {
		o.PaymentResult = &domain.PaymentResult{ID: *paymentID}
		if paymentStatus != nil {
			o.PaymentResult.Status = *paymentStatus
		}
		if paymentEmail != nil {
			o.PaymentResult.Email = *paymentEmail
		}
	}
	return &o, nil
}

func (s *OrderStore) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "postgres.order.list", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.order.list", "failed to scan order")
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.order.list", "failed to list orders")
	}

	for i := range orders {
		items, err := s.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, domain.Internal(err, "postgres.order.list", "failed to load order items")
		}
		orders[i].OrderItems = items
	}
	return orders, nil
}

func (s *OrderStore) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := s.store.pool.Query(ctx,
		`SELECT product_id, name, price, qty, image
		 FROM order_items WHERE order_id = $1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Qty, &item.Image); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
