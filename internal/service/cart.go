package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
	"storefront-api/internal/repository"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*dto.Cart, error)
	Add(ctx context.Context, userID string, req *dto.AddToCartRequest) (*dto.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*dto.Cart, error)
	Clear(ctx context.Context, userID string) error

	// Checkout turns the cart into an order priced by the store rules and
	// empties the cart, atomically.
	Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*model.Order, error)
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	rules       config.Pricing
	logger      *zap.Logger
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	rules config.Pricing,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		rules:       rules,
		logger:      logger,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*dto.Cart, error) {
	items, err := s.cartRepo.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return buildCart(items), nil
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, req *dto.AddToCartRequest) (*dto.Cart, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}
	if req.Qty < 1 {
		return nil, fmt.Errorf("%w: qty must be at least 1", ErrInvalidInput)
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		UserID:       userID,
		ProductID:    product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Brand:        product.Brand,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Quantity:     req.Qty,
	}

	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("store cart item: %w", err)
	}

	return s.Get(ctx, userID)
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID, productID string) (*dto.Cart, error) {
	if err := s.cartRepo.Remove(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, nil, userID)
}

func (s *cartServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*model.Order, error) {
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	cartItems, err := s.cartRepo.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Image:     ci.Image,
			Price:     ci.Price,
			Quantity:  ci.Quantity,
		})
	}

	quote := pricing.QuoteFromRules(orderItems, s.rules)

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      quote.ItemsPrice,
		ShippingPrice:   quote.ShippingPrice,
		TaxPrice:        quote.TaxPrice,
		TotalPrice:      quote.TotalPrice,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		return s.cartRepo.Clear(ctx, tx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.logger.Info("cart checked out",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID),
		zap.Float64("total", order.TotalPrice),
	)

	return order, nil
}

func buildCart(items []*model.CartItem) *dto.Cart {
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{Price: it.Price, Quantity: it.Quantity})
	}

	itemsPrice, _ := pricing.ItemsPrice(orderItems).Float64()

	return &dto.Cart{
		Items:      items,
		ItemsPrice: itemsPrice,
	}
}

func validateShippingAddress(addr model.ShippingAddress) error {
	switch {
	case addr.Address == "":
		return fmt.Errorf("%w: shipping address is required", ErrInvalidInput)
	case addr.City == "":
		return fmt.Errorf("%w: shipping city is required", ErrInvalidInput)
	case addr.PostalCode == "":
		return fmt.Errorf("%w: shipping postal code is required", ErrInvalidInput)
	case addr.Country == "":
		return fmt.Errorf("%w: shipping country is required", ErrInvalidInput)
	}
	return nil
}
