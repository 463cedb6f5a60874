package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
	"storefront-api/internal/repository"
)

const eventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, user *model.User, id string) (*model.Order, error)
	Mine(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)

	// Pay verifies the payment with the provider and marks the order paid
	// with the provider-reported receipt.
	Pay(ctx context.Context, user *model.User, id string, req *dto.PayOrderRequest) (*model.Order, error)
	Deliver(ctx context.Context, id string) (*model.Order, error)

	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
	SalesByDate(ctx context.Context) ([]repository.SalesByDay, error)

	HandlePaypalWebhook(ctx context.Context, headers http.Header, body []byte) error
}

type orderServiceImpl struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	webhookRepo  repository.WebhookEventRepository
	paypalClient client.PaypalClient
	braintree    client.BraintreeClient
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	webhookRepo repository.WebhookEventRepository,
	paypalClient client.PaypalClient,
	braintree client.BraintreeClient,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		webhookRepo:  webhookRepo,
		paypalClient: paypalClient,
		braintree:    braintree,
		logger:       logger,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no order items", ErrInvalidInput)
	}
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Prices come from the catalog, never from the request.
	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", repository.ErrProductNotFound, it.ProductID)
		}
		if it.Qty < 1 {
			return nil, fmt.Errorf("%w: qty must be at least 1", ErrInvalidInput)
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  it.Qty,
		})
	}

	quote := pricing.QuoteWithBreakdown(orderItems, req.ShippingPrice, req.TaxPrice)

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

	if err := s.orderRepo.Create(ctx, nil, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", order.TotalPrice),
	)

	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, user *model.User, id string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderServiceImpl) Mine(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderServiceImpl) Pay(ctx context.Context, user *model.User, id string, req *dto.PayOrderRequest) (*model.Order, error) {
	order, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, repository.ErrOrderAlreadyPaid
	}

	var result model.PaymentResult
	if req.Nonce != "" {
		result, err = s.chargeBraintree(ctx, order, req.Nonce)
	} else {
		result, err = s.capturePaypal(ctx, req.ID)
	}
	if err != nil {
		return nil, err
	}

	paid, err := s.orderRepo.MarkPaid(ctx, order.ID, result)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order paid",
		zap.String("order_id", paid.ID),
		zap.String("payment_id", result.ID),
		zap.String("method", paid.PaymentMethod),
	)

	return paid, nil
}

// capturePaypal verifies the checkout order with PayPal and captures it when
// the buyer has approved. Only a COMPLETED capture counts as paid.
func (s *orderServiceImpl) capturePaypal(ctx context.Context, paypalOrderID string) (model.PaymentResult, error) {
	if paypalOrderID == "" {
		return model.PaymentResult{}, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	po, err := s.paypalClient.GetOrder(ctx, paypalOrderID)
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("get paypal order: %w", err)
	}

	if po.Status == "APPROVED" {
		po, err = s.paypalClient.CaptureOrder(ctx, paypalOrderID)
		if err != nil {
			return model.PaymentResult{}, fmt.Errorf("capture paypal order: %w", err)
		}
	}

	if po.Status != "COMPLETED" {
		return model.PaymentResult{}, fmt.Errorf("%w: paypal status %s", ErrPaymentNotCompleted, po.Status)
	}

	captureID := po.ID
	if len(po.PurchaseUnits) > 0 && len(po.PurchaseUnits[0].Payments.Captures) > 0 {
		captureID = po.PurchaseUnits[0].Payments.Captures[0].ID
	}

	return model.PaymentResult{
		ID:         captureID,
		Status:     po.Status,
		PayerEmail: po.Payer.Email,
	}, nil
}

func (s *orderServiceImpl) chargeBraintree(ctx context.Context, order *model.Order, nonce string) (model.PaymentResult, error) {
	txID, err := s.braintree.ChargeNonce(ctx, nonce, pricing.Amount(order.TotalPrice))
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("%w: %v", ErrPaymentNotCompleted, err)
	}

	return model.PaymentResult{
		ID:     txID,
		Status: "submitted_for_settlement",
	}, nil
}

func (s *orderServiceImpl) Deliver(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.MarkDelivered(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order delivered", zap.String("order_id", order.ID))
	return order, nil
}

func (s *orderServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

func (s *orderServiceImpl) TotalSales(ctx context.Context) (float64, error) {
	return s.orderRepo.TotalSales(ctx)
}

func (s *orderServiceImpl) SalesByDate(ctx context.Context) ([]repository.SalesByDay, error) {
	return s.orderRepo.SalesByDate(ctx)
}

// HandlePaypalWebhook processes capture notifications delivered by PayPal.
// Redelivered events and captures for already-paid orders are no-ops, so the
// endpoint is safe to retry.
func (s *orderServiceImpl) HandlePaypalWebhook(ctx context.Context, headers http.Header, body []byte) error {
	if err := s.paypalClient.VerifyWebhookSignature(ctx, headers, body); err != nil {
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	}

	var event model.PayPalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook payload", ErrInvalidInput)
	}
	if event.ID == "" {
		return fmt.Errorf("%w: webhook event id is required", ErrInvalidInput)
	}

	seen, err := s.webhookRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if seen {
		return nil
	}

	if event.EventType == eventCaptureCompleted {
		if err := s.applyCaptureCompleted(ctx, &event); err != nil {
			return err
		}
	}

	return s.webhookRepo.MarkProcessed(ctx, event.ID, event.EventType)
}

func (s *orderServiceImpl) applyCaptureCompleted(ctx context.Context, event *model.PayPalWebhookEvent) error {
	paypalOrderID := event.Resource.SupplementaryData.RelatedIDs.OrderID
	if paypalOrderID == "" {
		return fmt.Errorf("%w: webhook resource has no related order", ErrInvalidInput)
	}

	// The checkout order carries our order id as the purchase unit reference.
	po, err := s.paypalClient.GetOrder(ctx, paypalOrderID)
	if err != nil {
		return fmt.Errorf("resolve paypal order: %w", err)
	}
	if len(po.PurchaseUnits) == 0 || po.PurchaseUnits[0].ReferenceID == "" {
		return fmt.Errorf("%w: paypal order %s has no reference id", ErrInvalidInput, paypalOrderID)
	}

	result := model.PaymentResult{
		ID:         event.Resource.ID,
		Status:     event.Resource.Status,
		PayerEmail: event.Resource.Payer.Email,
	}

	_, err = s.orderRepo.MarkPaid(ctx, po.PurchaseUnits[0].ReferenceID, result)
	if errors.Is(err, repository.ErrOrderAlreadyPaid) {
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("order paid via webhook",
		zap.String("order_id", po.PurchaseUnits[0].ReferenceID),
		zap.String("capture_id", event.Resource.ID),
	)

	return nil
}
