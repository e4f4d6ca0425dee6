package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/service"
)

// ProductStore implements service.ProductStore using PostgreSQL.
type ProductStore struct {
	store *Store
}

var _ service.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a PostgreSQL-backed product store.
func NewProductStore(store *Store) *ProductStore {
	return &ProductStore{store: store}
}

const productSelect = `
	SELECT id, name, image, brand, category, price, created_at, updated_at
	FROM products`

// ListProducts returns the catalog, newest first.
func (s *ProductStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.pool.Query(ctx, productSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.list", "failed to list products")
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.product.list", "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.product.list", "failed to list products")
	}
	return products, nil
}

// GetProduct loads one product.
func (s *ProductStore) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	row := s.store.pool.QueryRow(ctx, productSelect+` WHERE id = $1`, productID)
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "postgres.product.get", "failed to load product")
	}
	return &p, nil
}

// CreateProduct inserts a catalog entry.
func (s *ProductStore) CreateProduct(ctx context.Context, params domain.ProductParams) (*domain.Product, error) {
	now := time.Now().UTC()
	p := domain.Product{
		ID:        uuid.New(),
		Name:      params.Name,
		Image:     params.Image,
		Brand:     params.Brand,
		Category:  params.Category,
		Price:     params.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.store.pool.Exec(ctx,
		`INSERT INTO products (id, name, image, brand, category, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Image, p.Brand, p.Category, p.Price, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.create", "failed to insert product")
	}
	return &p, nil
}

// UpdateProduct overwrites a product's writable fields.
func (s *ProductStore) UpdateProduct(ctx context.Context, productID uuid.UUID, params domain.ProductParams) (*domain.Product, error) {
	tag, err := s.store.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, image = $3, brand = $4, category = $5, price = $6, updated_at = now()
		 WHERE id = $1`,
		productID, params.Name, params.Image, params.Brand, params.Category, params.Price,
	)
	if err != nil {
		return nil, domain.Internal(err, "postgres.product.update", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrProductNotFound
	}
	return s.GetProduct(ctx, productID)
}

// DeleteProduct removes a product from the catalog. Existing cart and order
// lines keep their snapshots.
func (s *ProductStore) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	tag, err := s.store.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return domain.Internal(err, "postgres.product.delete", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
