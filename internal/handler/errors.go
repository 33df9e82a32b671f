package handler

import (
	"ecommerce-api/internal/service"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// toHTTPError translates domain failures into status codes; anything
// unrecognized bubbles up to echo's error handler as a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrOrderAlreadyPaid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	default:
		return err
	}
}
