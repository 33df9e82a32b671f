package main

import (
	"ecommerce-api/internal/client"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/server"
	"ecommerce-api/internal/service"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Environment.Name)
	defer logger.Sync()

	var db *gorm.DB
	var err error
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = client.InitSqliteClient(cfg.Database.URL)
	default:
		db, err = client.InitMysqlClient(cfg.Database.URL)
	}
	if err != nil {
		logger.L().Fatal("database init", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userService := service.NewUserService(userRepo, tokens)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(db, productRepo, orderRepo)
	paymentService := service.NewPaymentService(db, orderRepo, paymentRepo)

	srv := server.NewServer(userService, productService, orderService, paymentService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.L().Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.L().Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.L().Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
