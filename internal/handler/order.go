package handler

import (
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Create(ctx, user, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListByUser(ctx, user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dto.NewOrderResponse(o)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	id, err := idParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, user.ID, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
