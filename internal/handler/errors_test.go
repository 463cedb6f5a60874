package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

func TestHTTPErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrEmptyCart, http.StatusBadRequest},
		{repository.ErrOrderNotPaid, http.StatusBadRequest},
		{repository.ErrAlreadyReviewed, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{repository.ErrUserNotFound, http.StatusNotFound},
		{repository.ErrProductNotFound, http.StatusNotFound},
		{repository.ErrOrderNotFound, http.StatusNotFound},
		{repository.ErrUserAlreadyExists, http.StatusConflict},
		{repository.ErrOrderAlreadyPaid, http.StatusConflict},
		{repository.ErrOrderAlreadyDelivered, http.StatusConflict},
		{service.ErrPaymentNotCompleted, http.StatusPaymentRequired},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			var httpErr *echo.HTTPError
			require.ErrorAs(t, httpError(tc.err), &httpErr)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestHTTPErrorWrappedErrors(t *testing.T) {
	wrapped := errors.Join(service.ErrInvalidInput, errors.New("qty must be at least 1"))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, httpError(wrapped), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHTTPErrorPassesUnknownThrough(t *testing.T) {
	unknown := errors.New("boom")
	assert.Equal(t, unknown, httpError(unknown))
}
