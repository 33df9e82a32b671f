package middleware

import (
	"ecommerce-api/internal/model"

	"github.com/labstack/echo/v4"
)

// CurrentUser returns the authenticated user set by Auth, or nil on
// routes that skipped the middleware.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
