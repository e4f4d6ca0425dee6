package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rowanvale/embla/internal/domain"
)

// categoryService implements domain.CategoryService.
type categoryService struct {
	store  CategoryStore
	logger *slog.Logger
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(store CategoryStore, logger *slog.Logger) domain.CategoryService {
	return &categoryService{store: store, logger: logger}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, params domain.CategoryParams) (*domain.Category, error) {
	if params.Name == "" {
		return nil, domain.Errorf(domain.EINVALID, "", "Category name is required")
	}

	category, err := s.store.CreateCategory(ctx, params)
	if err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, params domain.CategoryParams) (*domain.Category, error) {
	if params.Name == "" {
		return nil, domain.Errorf(domain.EINVALID, "", "Category name is required")
	}

	category, err := s.store.UpdateCategory(ctx, categoryID, params)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) || domain.IsCode(err, domain.ECONFLICT) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
