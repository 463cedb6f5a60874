package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-api/internal/dto"
	"storefront-api/internal/model"
)

const (
	cacheKeyTop = "products:top"
	cacheKeyNew = "products:new"
)

// cachedProductService fronts the read-heavy catalog endpoints with redis.
// Mutations pass through and drop the affected keys.
type cachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewCachedProductService(next ProductService, redisClient *redis.Client, cacheTTL time.Duration) ProductService {
	return &cachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (s *cachedProductService) Page(ctx context.Context, keyword string, page int) (*dto.ProductPage, error) {
	return s.next.Page(ctx, keyword, page)
}

func (s *cachedProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	key := productKey(id)

	if val, err := s.redisClient.Get(ctx, key).Result(); err == nil {
		var product model.Product
		if err := json.Unmarshal([]byte(val), &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		s.redisClient.Set(ctx, key, data, s.cacheTTL)
	}

	return product, nil
}

func (s *cachedProductService) All(ctx context.Context) ([]*model.Product, error) {
	return s.next.All(ctx)
}

func (s *cachedProductService) Top(ctx context.Context) ([]*model.Product, error) {
	return s.cachedList(ctx, cacheKeyTop, s.next.Top)
}

func (s *cachedProductService) New(ctx context.Context) ([]*model.Product, error) {
	return s.cachedList(ctx, cacheKeyNew, s.next.New)
}

func (s *cachedProductService) cachedList(ctx context.Context, key string, load func(context.Context) ([]*model.Product, error)) ([]*model.Product, error) {
	if val, err := s.redisClient.Get(ctx, key).Result(); err == nil {
		var products []*model.Product
		if err := json.Unmarshal([]byte(val), &products); err == nil {
			return products, nil
		}
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		s.redisClient.Set(ctx, key, data, s.cacheTTL)
	}

	return products, nil
}

func (s *cachedProductService) Filter(ctx context.Context, req *dto.FilterRequest) ([]*model.Product, error) {
	return s.next.Filter(ctx, req)
}

func (s *cachedProductService) Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.next.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.redisClient.Del(ctx, cacheKeyTop, cacheKeyNew)
	return product, nil
}

func (s *cachedProductService) Update(ctx context.Context, id string, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.next.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.redisClient.Del(ctx, productKey(id), cacheKeyTop, cacheKeyNew)
	return product, nil
}

func (s *cachedProductService) Delete(ctx context.Context, id string) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}

	s.redisClient.Del(ctx, productKey(id), cacheKeyTop, cacheKeyNew)
	return nil
}

func (s *cachedProductService) AddReview(ctx context.Context, productID string, user *model.User, req *dto.ReviewRequest) error {
	if err := s.next.AddReview(ctx, productID, user, req); err != nil {
		return err
	}

	s.redisClient.Del(ctx, productKey(productID), cacheKeyTop)
	return nil
}
