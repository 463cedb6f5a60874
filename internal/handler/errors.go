package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

// httpError translates service and repository errors into HTTP responses.
// Anything unmapped surfaces as a 500 through echo's error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, repository.ErrOrderNotPaid),
		errors.Is(err, repository.ErrAlreadyReviewed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrUserAlreadyExists),
		errors.Is(err, repository.ErrCategoryAlreadyExists),
		errors.Is(err, repository.ErrOrderAlreadyPaid),
		errors.Is(err, repository.ErrOrderAlreadyDelivered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrPaymentNotCompleted):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	}

	return err
}
