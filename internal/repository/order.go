package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront-api/internal/model"
)

var (
	ErrOrderAlreadyPaid      = errors.New("order already paid")
	ErrOrderNotPaid          = errors.New("order not paid")
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
)

// SalesByDay is one row of the admin sales report, grouped by paid date.
type SalesByDay struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"totalSales"`
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)

	// MarkPaid flips isPaid exactly once and records the capture receipt.
	// paidAt is never cleared or overwritten afterwards.
	MarkPaid(ctx context.Context, id string, result model.PaymentResult) (*model.Order, error)

	// MarkDelivered requires the order to be paid already.
	MarkDelivered(ctx context.Context, id string) (*model.Order, error)

	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
	SalesByDate(ctx context.Context) ([]SalesByDay, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) List(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, id string, result model.PaymentResult) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsPaid {
			return ErrOrderAlreadyPaid
		}

		now := time.Now()
		res := tx.Model(&model.Order{}).
			Where("id = ? AND is_paid = ?", id, false).
			Updates(map[string]interface{}{
				"is_paid":             true,
				"paid_at":             now,
				"payment_id":          result.ID,
				"payment_status":      result.Status,
				"payment_payer_email": result.PayerEmail,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderAlreadyPaid
		}

		return tx.Preload("Items").Where("id = ?", id).First(&order).Error
	})

	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) MarkDelivered(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.IsPaid {
			return ErrOrderNotPaid
		}
		if order.IsDelivered {
			return ErrOrderAlreadyDelivered
		}

		now := time.Now()
		res := tx.Model(&model.Order{}).
			Where("id = ? AND is_paid = ? AND is_delivered = ?", id, true, false).
			Updates(map[string]interface{}{
				"is_delivered": true,
				"delivered_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderAlreadyDelivered
		}

		return tx.Preload("Items").Where("id = ?", id).First(&order).Error
	})

	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) TotalSales(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepoImpl) SalesByDate(ctx context.Context) ([]SalesByDay, error) {
	var rows []SalesByDay
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("DATE(paid_at) AS date, SUM(total_price) AS total_sales").
		Where("is_paid = ?", true).
		Group("DATE(paid_at)").
		Order("date").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
