package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/model"
)

type CartRepository interface {
	Items(ctx context.Context, userID string) ([]*model.CartItem, error)

	// Upsert inserts the snapshot or, when the product is already in the cart,
	// replaces its quantity. Last write wins.
	Upsert(ctx context.Context, item *model.CartItem) error

	// Remove deletes an entry by product id. Removing an absent entry is not
	// an error.
	Remove(ctx context.Context, userID, productID string) error

	Clear(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Items(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) Upsert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":           item.Name,
			"image":          item.Image,
			"brand":          item.Brand,
			"price":          item.Price,
			"count_in_stock": item.CountInStock,
			"quantity":       item.Quantity,
			"updated_at":     time.Now(),
		}),
	}).Create(item).Error
}

func (r *cartRepoImpl) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
