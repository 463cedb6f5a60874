package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

// Listing caps, matching the storefront pages they feed.
const (
	productPageSize  = 6
	allProductsLimit = 12
	topProductsLimit = 4
	newProductsLimit = 5
)

type ProductService interface {
	Page(ctx context.Context, keyword string, page int) (*dto.ProductPage, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	All(ctx context.Context) ([]*model.Product, error)
	Top(ctx context.Context) ([]*model.Product, error)
	New(ctx context.Context) ([]*model.Product, error)
	Filter(ctx context.Context, req *dto.FilterRequest) ([]*model.Product, error)

	Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req *dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error

	AddReview(ctx context.Context, productID string, user *model.User, req *dto.ReviewRequest) error
}

type productServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// validateProductRequest reports the first missing required field.
func validateProductRequest(req *dto.ProductRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case req.Brand == "":
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	case req.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	case req.Price <= 0:
		return fmt.Errorf("%w: price is required", ErrInvalidInput)
	case req.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	case req.CountInStock < 0:
		return fmt.Errorf("%w: countInStock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *productServiceImpl) Page(ctx context.Context, keyword string, page int) (*dto.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, total, err := s.productRepo.Page(ctx, keyword, page, productPageSize)
	if err != nil {
		return nil, fmt.Errorf("page products: %w", err)
	}

	return &dto.ProductPage{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(total) / float64(productPageSize))),
	}, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productServiceImpl) All(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.Latest(ctx, allProductsLimit)
}

func (s *productServiceImpl) Top(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.TopRated(ctx, topProductsLimit)
}

func (s *productServiceImpl) New(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.Latest(ctx, newProductsLimit)
}

func (s *productServiceImpl) Filter(ctx context.Context, req *dto.FilterRequest) ([]*model.Product, error) {
	var minPrice, maxPrice *float64
	if len(req.Radio) == 2 {
		minPrice, maxPrice = &req.Radio[0], &req.Radio[1]
	}

	return s.productRepo.Filter(ctx, req.Checked, minPrice, maxPrice)
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.Category); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Description:  req.Description,
		CategoryID:   req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, id string, req *dto.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:           id,
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Description:  req.Description,
		CategoryID:   req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, id)
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productServiceImpl) AddReview(ctx context.Context, productID string, user *model.User, req *dto.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    user.ID,
		Name:      user.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	return s.productRepo.AddReview(ctx, review)
}
