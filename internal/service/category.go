package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, id, name string) (*model.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryServiceImpl) Create(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, repository.ErrCategoryAlreadyExists
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, fmt.Errorf("look up category: %w", err)
	}

	category := &model.Category{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("store category: %w", err)
	}

	return category, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	category := &model.Category{ID: id, Name: name}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryServiceImpl) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}
