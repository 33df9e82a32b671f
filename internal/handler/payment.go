package handler

import (
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	payment, err := h.paymentService.Create(ctx, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	id, err := idParam(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Get(ctx, user.ID, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}
