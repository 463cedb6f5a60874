package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-api/internal/dto"
	"storefront-api/internal/repository"
)

func newProductService(t *testing.T) (ProductService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		testLogger(),
	)
	return svc, db
}

func productRequest(categoryID string) *dto.ProductRequest {
	return &dto.ProductRequest{
		Name:         "Widget",
		Brand:        "Acme",
		Description:  "A widget",
		Category:     categoryID,
		Price:        19.99,
		CountInStock: 5,
	}
}

func TestCreateProduct(t *testing.T) {
	svc, db := newProductService(t)

	category := seedCategory(t, db, "gadgets")

	product, err := svc.Create(context.Background(), productRequest(category.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, category.ID, product.CategoryID)
	assert.Equal(t, 0.0, product.Rating)
	assert.Equal(t, 0, product.NumReviews)
}

func TestCreateProductValidation(t *testing.T) {
	svc, db := newProductService(t)
	category := seedCategory(t, db, "gadgets")

	cases := []struct {
		field  string
		mutate func(*dto.ProductRequest)
	}{
		{"name", func(r *dto.ProductRequest) { r.Name = "" }},
		{"brand", func(r *dto.ProductRequest) { r.Brand = "" }},
		{"description", func(r *dto.ProductRequest) { r.Description = "" }},
		{"price", func(r *dto.ProductRequest) { r.Price = 0 }},
		{"category", func(r *dto.ProductRequest) { r.Category = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			req := productRequest(category.ID)
			tc.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.Create(context.Background(), productRequest("nope"))
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, db := newProductService(t)
	category := seedCategory(t, db, "gadgets")

	_, err := svc.Update(context.Background(), "missing", productRequest(category.ID))
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductPageKeywordSearch(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "gadgets")
	for i := 0; i < 8; i++ {
		req := productRequest(category.ID)
		req.Name = fmt.Sprintf("Widget %d", i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	req := productRequest(category.ID)
	req.Name = "Gizmo"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	page, err := svc.Page(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Pages)

	page, err = svc.Page(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Products, 3)

	page, err = svc.Page(ctx, "gizmo", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Gizmo", page.Products[0].Name)
}

func TestTopAndNewLimits(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "gadgets")
	for i := 0; i < 7; i++ {
		req := productRequest(category.ID)
		req.Name = fmt.Sprintf("Widget %d", i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	top, err := svc.Top(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 4)

	latest, err := svc.New(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 5)
}

func TestFilterByCategoryAndPrice(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	gadgets := seedCategory(t, db, "gadgets")
	books := seedCategory(t, db, "books")

	cheap := seedProduct(t, db, gadgets.ID, 10, 5)
	seedProduct(t, db, gadgets.ID, 200, 5)
	seedProduct(t, db, books.ID, 15, 5)

	products, err := svc.Filter(ctx, &dto.FilterRequest{
		Checked: []string{gadgets.ID},
		Radio:   []float64{0, 50},
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, cheap.ID, products[0].ID)
}

func TestAddReviewUpdatesAggregate(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "gadgets")
	product := seedProduct(t, db, category.ID, 10, 5)
	alice := seedUser(t, db, false)
	bob := seedUser(t, db, false)

	err := svc.AddReview(ctx, product.ID, alice, &dto.ReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	err = svc.AddReview(ctx, product.ID, bob, &dto.ReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NumReviews)
	assert.Equal(t, 3.5, stored.Rating)
	assert.Len(t, stored.Reviews, 2)
}

func TestAddReviewTwiceRejected(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "gadgets")
	product := seedProduct(t, db, category.ID, 10, 5)
	user := seedUser(t, db, false)

	err := svc.AddReview(ctx, product.ID, user, &dto.ReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)

	err = svc.AddReview(ctx, product.ID, user, &dto.ReviewRequest{Rating: 1, Comment: "changed my mind"})
	assert.ErrorIs(t, err, repository.ErrAlreadyReviewed)

	stored, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumReviews)
	assert.Equal(t, 5.0, stored.Rating)
}

func TestAddReviewInvalidRating(t *testing.T) {
	svc, db := newProductService(t)

	category := seedCategory(t, db, "gadgets")
	product := seedProduct(t, db, category.ID, 10, 5)
	user := seedUser(t, db, false)

	err := svc.AddReview(context.Background(), product.ID, user, &dto.ReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteProduct(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "gadgets")
	product := seedProduct(t, db, category.ID, 10, 5)

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err := svc.Get(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
