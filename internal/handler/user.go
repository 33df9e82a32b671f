package handler

import (
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *UserHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)

	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
