package server

import (
	"ecommerce-api/internal/handler"
	"ecommerce-api/internal/logger"
	mw "ecommerce-api/internal/middleware"
	"ecommerce-api/internal/service"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	echo           *echo.Echo
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler

	authMiddleware echo.MiddlewareFunc
}

func NewServer(
	userService service.UserService,
	productService service.ProductService,
	orderService service.OrderService,
	paymentService service.PaymentService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	s := &Server{
		echo:           e,
		userHandler:    handler.NewUserHandler(userService),
		productHandler: handler.NewProductHandler(productService),
		orderHandler:   handler.NewOrderHandler(orderService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		authMiddleware: mw.Auth(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Ecommerce API is running"})
	})

	// credential endpoints get the strict limiter tier
	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(2),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	users := s.echo.Group("/users")
	users.POST("/register", s.userHandler.Register, loginLimiter)
	users.POST("/login", s.userHandler.Login, loginLimiter)
	users.GET("/me", s.userHandler.Me, s.authMiddleware)

	products := s.echo.Group("/products")
	products.POST("", s.productHandler.Create, s.authMiddleware)
	products.GET("", s.productHandler.List)
	products.GET("/:id", s.productHandler.Get)
	products.PUT("/:id", s.productHandler.Update, s.authMiddleware)
	products.DELETE("/:id", s.productHandler.Delete, s.authMiddleware)

	orders := s.echo.Group("/orders", s.authMiddleware)
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.List)
	orders.GET("/:id", s.orderHandler.Get)

	payments := s.echo.Group("/payments", s.authMiddleware)
	payments.POST("", s.paymentHandler.Create)
	payments.GET("/:id", s.paymentHandler.Get)
}

// Echo exposes the underlying router, used by handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
