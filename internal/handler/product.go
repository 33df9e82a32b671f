package handler

import (
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/service"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	skip := intQueryParam(c, "skip", 0)
	limit := intQueryParam(c, "limit", 100)

	products, err := h.productService.List(ctx, skip, limit)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = dto.NewProductResponse(p)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Update(ctx, id, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(ctx, id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return uint(id), nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
