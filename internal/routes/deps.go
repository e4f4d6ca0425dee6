package routes

import (
	"github.com/rowanvale/embla/internal/handler/api"
)

// APIDeps contains the handlers the JSON API routes dispatch to.
type APIDeps struct {
	CartHandler     *api.CartHandler
	CategoryHandler *api.CategoryHandler
	CheckoutHandler *api.CheckoutHandler
	OrderHandler    *api.OrderHandler
	ProductHandler  *api.ProductHandler
}
