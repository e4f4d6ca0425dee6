package domain

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Item not found in cart"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be at least 1"}
	ErrMissingProductID = &Error{Code: EINVALID, Message: "Product ID is required"}
)

// CartService provides business logic for shopping cart operations.
// Every mutation leaves the cart's derived totals consistent with its items.
type CartService interface {
	// GetCart returns the user's cart. A user with no cart reads as the
	// empty cart shape rather than an error.
	GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// AddItem adds a product to the cart, snapshotting the product's
	// current name/image/brand/price. Adding a product already in the cart
	// increments that line's quantity instead of appending a duplicate.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error)

	// UpdateQuantity sets a line item's quantity to an absolute value.
	// The product must already be in the cart.
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error)

	// RemoveItem removes a product's line from the cart. Removing a product
	// that is not in the cart is a no-op, not an error.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*Cart, error)

	// ClearCart empties the cart and zeroes its totals unconditionally.
	ClearCart(ctx context.Context, userID uuid.UUID) (*Cart, error)
}

// CartItem is one product line in a cart. Name, image, brand and price are
// snapshots taken when the item was added; they are not re-synced if the
// product changes later.
type CartItem struct {
	ProductID uuid.UUID `json:"product"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// LineTotal returns the item's price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is a user's pending purchase. TotalItems and TotalPrice are derived
// from Items and must never be set independently.
type Cart struct {
	UserID     uuid.UUID  `json:"user"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// EmptyCart returns the zero-value cart shape for a user, matching what a
// read of a nonexistent cart produces.
func EmptyCart(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// RecomputeTotals overwrites TotalItems and TotalPrice from Items.
// TotalPrice is rounded to cents at computation time; prices carry at most
// two decimals so line totals are exact in cents and rounding only strips
// float noise from the sum.
func (c *Cart) RecomputeTotals() {
	var items int
	var price float64
	for _, it := range c.Items {
		items += it.Quantity
		price += it.LineTotal()
	}
	c.TotalItems = items
	c.TotalPrice = RoundCents(price)
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID uuid.UUID) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// RoundCents rounds a dollar amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
