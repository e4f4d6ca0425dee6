package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/service"
)

// CategoryStore implements service.CategoryStore using PostgreSQL.
type CategoryStore struct {
	store *Store
}

var _ service.CategoryStore = (*CategoryStore)(nil)

// NewCategoryStore creates a PostgreSQL-backed category store.
func NewCategoryStore(store *Store) *CategoryStore {
	return &CategoryStore{store: store}
}

const categorySelect = `
	SELECT id, name, created_at, updated_at
	FROM categories`

// ListCategories returns all categories ordered by name.
func (s *CategoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.store.pool.Query(ctx, categorySelect+` ORDER BY name ASC`)
	if err != nil {
		return nil, domain.Internal(err, "postgres.category.list", "failed to list categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.category.list", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.category.list", "failed to list categories")
	}
	return categories, nil
}

// GetCategory loads one category.
func (s *CategoryStore) GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	row := s.store.pool.QueryRow(ctx, categorySelect+` WHERE id = $1`, categoryID)
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Internal(err, "postgres.category.get", "failed to load category")
	}
	return &c, nil
}

// CreateCategory inserts a category. Names are unique.
func (s *CategoryStore) CreateCategory(ctx context.Context, params domain.CategoryParams) (*domain.Category, error) {
	now := time.Now().UTC()
	c := domain.Category{
		ID:        uuid.New(),
		Name:      params.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.store.pool.Exec(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict("postgres.category.create", "Category name already exists")
		}
		return nil, domain.Internal(err, "postgres.category.create", "failed to insert category")
	}
	return &c, nil
}

// UpdateCategory renames a category.
func (s *CategoryStore) UpdateCategory(ctx context.Context, categoryID uuid.UUID, params domain.CategoryParams) (*domain.Category, error) {
	tag, err := s.store.pool.Exec(ctx,
		`UPDATE categories SET name = $2, updated_at = now() WHERE id = $1`,
		categoryID, params.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict("postgres.category.update", "Category name already exists")
		}
		return nil, domain.Internal(err, "postgres.category.update", "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return s.GetCategory(ctx, categoryID)
}

// DeleteCategory removes a category. Products keep their category name
// snapshot.
func (s *CategoryStore) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	tag, err := s.store.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return domain.Internal(err, "postgres.category.delete", "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
