package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rowanvale/embla/internal/domain"
)

// CategoryHandler exposes catalog categories over JSON.
type CategoryHandler struct {
	service  domain.CategoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service domain.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/{categoryID}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST /api/admin/categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "", "Category name is required"))
		return
	}

	category, err := h.service.CreateCategory(r.Context(), domain.CategoryParams{Name: req.Name})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/admin/categories/{categoryID}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "", "Category name is required"))
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), categoryID, domain.CategoryParams{Name: req.Name})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/admin/categories/{categoryID}.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
