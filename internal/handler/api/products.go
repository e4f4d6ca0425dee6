package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rowanvale/embla/internal/domain"
)

// ProductHandler exposes the catalog over JSON.
type ProductHandler struct {
	service  domain.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service domain.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type productRequest struct {
	Name     string  `json:"name" validate:"required"`
	Image    string  `json:"image"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func (req productRequest) params() domain.ProductParams {
	return domain.ProductParams{
		Name:     req.Name,
		Image:    req.Image,
		Brand:    req.Brand,
		Category: req.Category,
		Price:    req.Price,
	}
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{productID}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "productID")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/admin/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "", "Product name is required and price cannot be negative"))
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req.params())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{productID}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "productID")
	if !ok {
		return
	}

	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "", "Product name is required and price cannot be negative"))
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, req.params())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{productID}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
