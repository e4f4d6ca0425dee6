package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/service"
)

// CartStore implements service.CartStore using PostgreSQL. Carts are keyed
// one-per-user; items live in cart_items with a position column preserving
// insertion order.
type CartStore struct {
	store *Store
}

var _ service.CartStore = (*CartStore)(nil)

// NewCartStore creates a PostgreSQL-backed cart store.
func NewCartStore(store *Store) *CartStore {
	return &CartStore{store: store}
}

// GetCart loads a user's cart with its items.
func (s *CartStore) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart := domain.EmptyCart(userID)

	row := s.store.pool.QueryRow(ctx,
		`SELECT total_items, total_price FROM carts WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&cart.TotalItems, &cart.TotalPrice); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "postgres.cart.get", "failed to load cart")
	}

	items, err := s.loadItems(ctx, s.store.pool, userID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.cart.get", "failed to load cart items")
	}
	cart.Items = items
	return cart, nil
}

// MutateCart locks the user's cart row, applies fn to the loaded cart,
// recomputes totals, and persists items and totals in one transaction. With
// create set, a missing cart row is inserted first; otherwise the mutation
// fails with ErrCartNotFound.
func (s *CartStore) MutateCart(ctx context.Context, userID uuid.UUID, create bool, fn func(*domain.Cart) error) (*domain.Cart, error) {
	var result *domain.Cart

	err := s.store.inTx(ctx, func(tx pgx.Tx) error {
		if create {
			_, err := tx.Exec(ctx,
				`INSERT INTO carts (user_id, total_items, total_price)
				 VALUES ($1, 0, 0)
				 ON CONFLICT (user_id) DO NOTHING`,
				userID,
			)
			if err != nil {
				return domain.Internal(err, "postgres.cart.mutate", "failed to ensure cart")
			}
		}

		cart := domain.EmptyCart(userID)
		row := tx.QueryRow(ctx,
			`SELECT total_items, total_price FROM carts WHERE user_id = $1 FOR UPDATE`,
			userID,
		)
		if err := row.Scan(&cart.TotalItems, &cart.TotalPrice); err != nil {
			if isNoRows(err) {
				return domain.ErrCartNotFound
			}
			return domain.Internal(err, "postgres.cart.mutate", "failed to lock cart")
		}

		items, err := s.loadItems(ctx, tx, userID)
		if err != nil {
			return domain.Internal(err, "postgres.cart.mutate", "failed to load cart items")
		}
		cart.Items = items

		if err := fn(cart); err != nil {
			return err
		}
		cart.RecomputeTotals()

		if err := s.saveItems(ctx, tx, userID, cart.Items); err != nil {
			return domain.Internal(err, "postgres.cart.mutate", "failed to save cart items")
		}
		_, err = tx.Exec(ctx,
			`UPDATE carts SET total_items = $2, total_price = $3, updated_at = now()
			 WHERE user_id = $1`,
			userID, cart.TotalItems, cart.TotalPrice,
		)
		if err != nil {
			return domain.Internal(err, "postgres.cart.mutate", "failed to update cart totals")
		}

		result = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCart removes the cart row; items cascade.
func (s *CartStore) DeleteCart(ctx context.Context, userID uuid.UUID) error {
	_, err := s.store.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return domain.Internal(err, "postgres.cart.delete", "failed to delete cart")
	}
	return nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *CartStore) loadItems(ctx context.Context, q queryer, userID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := q.Query(ctx,
		`SELECT product_id, name, image, brand, price, quantity
		 FROM cart_items WHERE cart_user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Image, &item.Brand, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// saveItems replaces the cart's item rows wholesale. Carts are small, so a
// delete-and-reinsert keeps the write path simple and the position column
// authoritative.
func (s *CartStore) saveItems(ctx context.Context, tx pgx.Tx, userID uuid.UUID, items []domain.CartItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_user_id = $1`, userID); err != nil {
		return err
	}
	for i, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO cart_items (cart_user_id, product_id, name, image, brand, price, quantity, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, item.ProductID, item.Name, item.Image, item.Brand, item.Price, item.Quantity, i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
