package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)

	cart, err := h.cartService.Get(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Add(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.Add(c.Request().Context(), user.ID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Remove(c echo.Context) error {
	user := middleware.CurrentUser(c)

	cart, err := h.cartService.Remove(c.Request().Context(), user.ID, c.Param("productId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if err := h.cartService.Clear(c.Request().Context(), user.ID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.cartService.Checkout(c.Request().Context(), user.ID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}
