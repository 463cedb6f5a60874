package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/repository"
)

func newCategoryService(t *testing.T) CategoryService {
	t.Helper()
	return NewCategoryService(repository.NewCategoryRepository(newTestDB(t)))
}

func TestCreateCategory(t *testing.T) {
	svc := newCategoryService(t)

	category, err := svc.Create(context.Background(), "gadgets")
	require.NoError(t, err)

	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "gadgets", category.Name)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "gadgets")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "gadgets")
	assert.ErrorIs(t, err, repository.ErrCategoryAlreadyExists)
}

func TestCreateCategoryEmptyName(t *testing.T) {
	svc := newCategoryService(t)

	_, err := svc.Create(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCategory(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "gadgets")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, category.ID, "electronics")
	require.NoError(t, err)
	assert.Equal(t, "electronics", updated.Name)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := newCategoryService(t)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestListCategories(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "gadgets")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "books")
	require.NoError(t, err)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
