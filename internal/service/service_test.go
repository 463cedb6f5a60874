package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// named shared in-memory db so every pooled connection sees the schema
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, client.Migrate(db))
	return db
}

func testPricingRules() config.Pricing {
	return config.Pricing{TaxRate: 0.15, FlatShipping: 10, FreeShippingOver: 100}
}

func seedUser(t *testing.T, db *gorm.DB, admin bool) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     "jane",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{ID: uuid.NewString(), Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:           uuid.NewString(),
		Name:         "Widget",
		Brand:        "Acme",
		Description:  "A widget",
		CategoryID:   categoryID,
		Price:        price,
		CountInStock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// fakePaypalClient scripts the provider responses per checkout order id.
type fakePaypalClient struct {
	orders    map[string]*model.PaypalOrder
	captured  map[string]*model.PaypalOrder
	verifyErr error
}

func (f *fakePaypalClient) ClientID() string { return "test-client-id" }

func (f *fakePaypalClient) GetOrder(_ context.Context, orderID string) (*model.PaypalOrder, error) {
	po, ok := f.orders[orderID]
	if !ok {
		return nil, client.ErrPaypalOrderNotFound
	}
	return po, nil
}

func (f *fakePaypalClient) CaptureOrder(_ context.Context, orderID string) (*model.PaypalOrder, error) {
	po, ok := f.captured[orderID]
	if !ok {
		return nil, client.ErrPaypalOrderNotFound
	}
	return po, nil
}

func (f *fakePaypalClient) VerifyWebhookSignature(_ context.Context, _ http.Header, _ []byte) error {
	return f.verifyErr
}

type fakeBraintreeClient struct {
	txID string
	err  error

	gotNonce  string
	gotAmount string
}

func (f *fakeBraintreeClient) ChargeNonce(_ context.Context, nonce, amount string) (string, error) {
	f.gotNonce, f.gotAmount = nonce, amount
	if f.err != nil {
		return "", f.err
	}
	return f.txID, nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
