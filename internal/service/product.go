package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
)

// productService implements domain.ProductService.
type productService struct {
	store  ProductStore
	logger *slog.Logger
}

// NewProductService creates a new ProductService instance.
func NewProductService(store ProductStore, logger *slog.Logger) domain.ProductService {
	return &productService{store: store, logger: logger}
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params domain.ProductParams) (*domain.Product, error) {
	if err := validateProductParams(params); err != nil {
		return nil, err
	}

	product, err := s.store.CreateProduct(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, params domain.ProductParams) (*domain.Product, error) {
	if err := validateProductParams(params); err != nil {
		return nil, err
	}

	product, err := s.store.UpdateProduct(ctx, productID, params)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.store.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func validateProductParams(params domain.ProductParams) error {
	if params.Name == "" {
		return domain.Errorf(domain.EINVALID, "", "Product name is required")
	}
	if params.Price < 0 {
		return domain.Errorf(domain.EINVALID, "", "Product price cannot be negative")
	}
	return nil
}
