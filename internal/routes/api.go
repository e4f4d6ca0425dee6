package routes

import (
	"github.com/rowanvale/embla/internal/router"
)

// RegisterAPIRoutes registers the storefront JSON API.
// Authentication happens upstream; handlers read the user from the
// X-User-ID header via middleware.WithUser.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Get("/api/products", deps.ProductHandler.ListProducts)
	r.Get("/api/products/{productID}", deps.ProductHandler.GetProduct)
	r.Get("/api/categories", deps.CategoryHandler.ListCategories)
	r.Get("/api/categories/{categoryID}", deps.CategoryHandler.GetCategory)

	// Cart
	r.Get("/api/cart", deps.CartHandler.GetCart)
	r.Delete("/api/cart", deps.CartHandler.ClearCart)
	r.Post("/api/cart/items", deps.CartHandler.AddItem)
	r.Put("/api/cart/items/{productID}", deps.CartHandler.UpdateQuantity)
	r.Delete("/api/cart/items/{productID}", deps.CartHandler.RemoveItem)

	// Checkout and orders
	r.Get("/api/checkout/totals", deps.CheckoutHandler.QuoteTotals)
	r.Post("/api/orders", deps.CheckoutHandler.PlaceOrder)
	r.Get("/api/orders/mine", deps.OrderHandler.ListMyOrders)
	r.Get("/api/orders/{orderID}", deps.OrderHandler.GetOrder)
	r.Put("/api/orders/{orderID}/pay", deps.OrderHandler.MarkPaid)
	r.Post("/api/orders/{orderID}/payment-intent", deps.OrderHandler.CreatePaymentIntent)

	// Admin
	r.Get("/api/admin/orders", deps.OrderHandler.ListOrders)
	r.Put("/api/admin/orders/{orderID}/deliver", deps.OrderHandler.MarkDelivered)
	r.Post("/api/admin/products", deps.ProductHandler.CreateProduct)
	r.Put("/api/admin/products/{productID}", deps.ProductHandler.UpdateProduct)
	r.Delete("/api/admin/products/{productID}", deps.ProductHandler.DeleteProduct)
	r.Post("/api/admin/categories", deps.CategoryHandler.CreateCategory)
	r.Put("/api/admin/categories/{categoryID}", deps.CategoryHandler.UpdateCategory)
	r.Delete("/api/admin/categories/{categoryID}", deps.CategoryHandler.DeleteCategory)
}
