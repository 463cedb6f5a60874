package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"storefront-api/internal/model"
)

var ErrAlreadyReviewed = errors.New("product already reviewed")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindMany(ctx context.Context, ids []string) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// Page returns one page of products matching the optional keyword
	// (case-insensitive substring on name) plus the total match count.
	Page(ctx context.Context, keyword string, page, pageSize int) ([]*model.Product, int64, error)
	Latest(ctx context.Context, limit int) ([]*model.Product, error)
	TopRated(ctx context.Context, limit int) ([]*model.Product, error)
	Filter(ctx context.Context, categoryIDs []string, minPrice, maxPrice *float64) ([]*model.Product, error)

	// AddReview appends a review and recomputes the product's numReviews and
	// mean rating in one transaction. A second review by the same user on the
	// same product fails with ErrAlreadyReviewed and changes nothing.
	AddReview(ctx context.Context, review *model.Review) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, ids []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"image":          product.Image,
			"brand":          product.Brand,
			"description":    product.Description,
			"category_id":    product.CategoryID,
			"price":          product.Price,
			"count_in_stock": product.CountInStock,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepoImpl) Page(ctx context.Context, keyword string, page, pageSize int) ([]*model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*model.Product
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(pageSize * (page - 1)).
		Find(&products).Error

	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) Latest(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) TopRated(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Filter(ctx context.Context, categoryIDs []string, minPrice, maxPrice *float64) ([]*model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if len(categoryIDs) > 0 {
		query = query.Where("category_id IN ?", categoryIDs)
	}
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var products []*model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) AddReview(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Review{}).
			Where("product_id = ? AND user_id = ?", review.ProductID, review.UserID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyReviewed
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var agg struct {
			Num    int64
			Rating float64
		}
		err = tx.Model(&model.Review{}).
			Select("COUNT(*) AS num, AVG(rating) AS rating").
			Where("product_id = ?", review.ProductID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		result := tx.Model(&model.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]interface{}{
				"num_reviews": agg.Num,
				"rating":      agg.Rating,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
