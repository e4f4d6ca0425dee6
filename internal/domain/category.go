package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}

// CategoryService provides catalog category operations. Create/Update/Delete
// back the admin dashboard; products reference categories by name.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	CreateCategory(ctx context.Context, params CategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, params CategoryParams) (*Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryParams carries the writable fields of a category.
type CategoryParams struct {
	Name string
}

// Category is a catalog grouping.
type Category struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
