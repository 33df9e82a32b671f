package middleware

import (
	"ecommerce-api/internal/service"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// Auth resolves the bearer token to a user and stores it on the echo
// context. Missing, invalid or expired tokens get a 401 with a
// challenge header.
func Auth(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c.Request())
			if token == "" {
				return unauthorized(c)
			}

			user, err := userService.ResolveToken(c.Request().Context(), token)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, service.ErrUnauthenticated.Error())
}
