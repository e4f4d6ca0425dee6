package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// ProductService provides catalog operations. Create/Update/Delete back the
// admin dashboard; List/Get back the storefront and the cart's snapshots.
type ProductService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error)
	CreateProduct(ctx context.Context, params ProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, params ProductParams) (*Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductParams carries the writable fields of a product.
type ProductParams struct {
	Name     string
	Image    string
	Brand    string
	Category string
	Price    float64
}

// Product is a catalog entry. Carts copy its name/image/brand/price when an
// item is added.
type Product struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Brand     string    `json:"brand"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
