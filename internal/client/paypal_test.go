package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/config"
	"storefront-api/internal/model"
)

// fakePaypalAPI serves the token, order, capture and verify endpoints the
// client talks to.
func fakePaypalAPI(t *testing.T, orders map[string]*model.PaypalOrder, verifyStatus string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
	})

	mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		po, ok := orders[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(po)
	})

	mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		po, ok := orders[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		po.Status = "COMPLETED"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(po)
	})

	mux.HandleFunc("POST /v1/notifications/verify-webhook-signature", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			assert.Equal(t, "wh-test", payload["webhook_id"])
		}
		json.NewEncoder(w).Encode(map[string]string{"verification_status": verifyStatus})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestPaypalClient(srvURL string) PaypalClient {
	return NewPaypalClient(&config.Paypal{
		BaseApiURL:   srvURL,
		ClientID:     "cid",
		ClientSecret: "secret",
		WebhookID:    "wh-test",
	})
}

func TestGetOrder(t *testing.T) {
	orders := map[string]*model.PaypalOrder{
		"PP-1": {ID: "PP-1", Status: "APPROVED", PurchaseUnits: []model.PurchaseUnit{{ReferenceID: "order-1"}}},
	}
	srv := fakePaypalAPI(t, orders, "SUCCESS")
	c := newTestPaypalClient(srv.URL)

	po, err := c.GetOrder(context.Background(), "PP-1")
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", po.Status)
	require.Len(t, po.PurchaseUnits, 1)
	assert.Equal(t, "order-1", po.PurchaseUnits[0].ReferenceID)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := fakePaypalAPI(t, map[string]*model.PaypalOrder{}, "SUCCESS")
	c := newTestPaypalClient(srv.URL)

	_, err := c.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPaypalOrderNotFound)
}

func TestCaptureOrder(t *testing.T) {
	orders := map[string]*model.PaypalOrder{
		"PP-1": {ID: "PP-1", Status: "APPROVED"},
	}
	srv := fakePaypalAPI(t, orders, "SUCCESS")
	c := newTestPaypalClient(srv.URL)

	po, err := c.CaptureOrder(context.Background(), "PP-1")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", po.Status)
}

func TestCaptureOrderNotFound(t *testing.T) {
	srv := fakePaypalAPI(t, map[string]*model.PaypalOrder{}, "SUCCESS")
	c := newTestPaypalClient(srv.URL)

	_, err := c.CaptureOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPaypalOrderNotFound)
}

func TestVerifyWebhookSignature(t *testing.T) {
	srv := fakePaypalAPI(t, nil, "SUCCESS")
	c := newTestPaypalClient(srv.URL)

	headers := http.Header{}
	headers.Set("Paypal-Transmission-Id", "tid")

	err := c.VerifyWebhookSignature(context.Background(), headers, []byte(`{"id":"WH-1"}`))
	assert.NoError(t, err)
}

func TestVerifyWebhookSignatureFailure(t *testing.T) {
	srv := fakePaypalAPI(t, nil, "FAILURE")
	c := newTestPaypalClient(srv.URL)

	err := c.VerifyWebhookSignature(context.Background(), http.Header{}, []byte(`{"id":"WH-1"}`))
	assert.Error(t, err)
}
