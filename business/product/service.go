package product

import (
	"context"
	"fmt"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// Repository is the persistence contract for the product catalog.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (domain.Product, error)
	Fetch(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// Service manages the product catalog.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if product.ID == "" || product.Name == "" {
		return domain.ErrBadParamInput
	}
	if product.Price < 0 {
		return domain.ErrBadParamInput
	}

	if err := s.repo.Create(ctx, product); err != nil {
		logger.Error("failed to create product", "product_id", product.ID, "error", err)
		return err
	}

	logger.Info("product created", "product_id", product.ID, "category", product.Category)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}
	if id == "" {
		return domain.Product{}, domain.ErrBadParamInput
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.Fetch(ctx)
}

func (s *Service) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if product.ID == "" {
		return domain.ErrBadParamInput
	}

	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "product_id", product.ID, "error", err)
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if id == "" {
		return domain.ErrBadParamInput
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "product_id", id, "error", err)
		return err
	}

	logger.Info("product deleted", "product_id", id)
	return nil
}
