package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"
)

type PaypalHandler struct {
	paypalClient client.PaypalClient
	orderService service.OrderService
}

func NewPaypalHandler(paypalClient client.PaypalClient, orderService service.OrderService) *PaypalHandler {
	return &PaypalHandler{
		paypalClient: paypalClient,
		orderService: orderService,
	}
}

// Config exposes the public client id the storefront needs to render the
// PayPal buttons.
func (h *PaypalHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.PaypalConfig{ClientID: h.paypalClient.ClientID()})
}

func (h *PaypalHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read webhook body")
	}

	if err := h.orderService.HandlePaypalWebhook(c.Request().Context(), c.Request().Header, body); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusOK)
}
