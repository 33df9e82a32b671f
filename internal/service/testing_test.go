package service

import (
	"context"
	"ecommerce-api/internal/client"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory SQLite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := client.InitSqliteClient(dsn)
	require.NoError(t, err)

	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:          email,
		HashedPassword: "irrelevant",
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func newTestProduct(t *testing.T, db *gorm.DB, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:  "widget",
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)

	return product
}

func placeTestOrder(t *testing.T, db *gorm.DB, user *model.User, items []dto.OrderItemRequest) *model.Order {
	t.Helper()

	svc := NewOrderService(db, repository.NewProductRepository(db), repository.NewOrderRepository(db))
	order, err := svc.Create(context.Background(), user, &dto.CreateOrderRequest{Items: items})
	require.NoError(t, err)

	return order
}

func newTestTokenManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour)
}
