package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
)

// CartStore persists carts. MutateCart is the single write path: it loads the
// caller's cart under a row lock, applies fn, recomputes totals and persists
// the result atomically. When create is false and no cart exists the store
// returns domain.ErrCartNotFound without invoking fn.
type CartStore interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	MutateCart(ctx context.Context, userID uuid.UUID, create bool, fn func(*domain.Cart) error) (*domain.Cart, error)
	DeleteCart(ctx context.Context, userID uuid.UUID) error
}

// OrderStore persists orders. CreateOrderFromCart locks the user's cart,
// invokes build to price and assemble the order, then inserts the order and
// clears the cart in the same transaction. If build fails nothing is written
// and the cart is left untouched.
type OrderStore interface {
	CreateOrderFromCart(ctx context.Context, userID uuid.UUID, build func(*domain.Cart) (*domain.Order, error)) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SetOrderPaid(ctx context.Context, orderID uuid.UUID, payment domain.PaymentResult) (*domain.Order, error)
	SetOrderDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

// CategoryStore persists catalog categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	CreateCategory(ctx context.Context, params domain.CategoryParams) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, params domain.CategoryParams) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

// ProductStore persists the catalog.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, params domain.ProductParams) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, params domain.ProductParams) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}
