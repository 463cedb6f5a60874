package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Create(c.Request().Context(), user.ID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Mine(c echo.Context) error {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.Mine(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Pay(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.PayOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Pay(c.Request().Context(), user, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	order, err := h.orderService.Deliver(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Count(c echo.Context) error {
	count, err := h.orderService.Count(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.OrderCount{TotalOrders: count})
}

func (h *OrderHandler) TotalSales(c echo.Context) error {
	total, err := h.orderService.TotalSales(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.SalesTotal{TotalSales: total})
}

func (h *OrderHandler) SalesByDate(c echo.Context) error {
	sales, err := h.orderService.SalesByDate(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, sales)
}
