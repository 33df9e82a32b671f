package service

import (
	"context"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(db *gorm.DB) PaymentService {
	return NewPaymentService(db, repository.NewOrderRepository(db), repository.NewPaymentRepository(db))
}

func TestPaymentService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	user := newTestUser(t, db, "payer@example.com")
	product := newTestProduct(t, db, 10.0, 5)
	order := placeTestOrder(t, db, user, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 3}})

	t.Run("AmountMismatch", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &dto.CreatePaymentRequest{
			OrderID: order.ID,
			Amount:  decimal.NewFromFloat(29.99),
		})
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})

	t.Run("Success", func(t *testing.T) {
		payment, err := svc.Create(ctx, user.ID, &dto.CreatePaymentRequest{
			OrderID:  order.ID,
			Amount:   decimal.NewFromFloat(30.0),
			Provider: "stub",
		})
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, order.ID, payment.OrderID)
		assert.NotEmpty(t, payment.TransactionID)

		var reloaded model.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, model.OrderStatusPaid, reloaded.Status)
	})

	t.Run("SecondPaymentRejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &dto.CreatePaymentRequest{
			OrderID: order.ID,
			Amount:  decimal.NewFromFloat(30.0),
		})
		assert.ErrorIs(t, err, ErrOrderAlreadyPaid)

		var count int64
		require.NoError(t, db.Model(&model.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("ForeignOrderLooksMissing", func(t *testing.T) {
		stranger := newTestUser(t, db, "stranger@example.com")

		_, err := svc.Create(ctx, stranger.ID, &dto.CreatePaymentRequest{
			OrderID: order.ID,
			Amount:  decimal.NewFromFloat(30.0),
		})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &dto.CreatePaymentRequest{
			OrderID: 9999,
			Amount:  decimal.NewFromFloat(30.0),
		})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestPaymentService_Get(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	user := newTestUser(t, db, "payer@example.com")
	product := newTestProduct(t, db, 5.0, 5)
	order := placeTestOrder(t, db, user, []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 2}})

	payment, err := svc.Create(ctx, user.ID, &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.NewFromFloat(10.0),
	})
	require.NoError(t, err)

	t.Run("Owner", func(t *testing.T) {
		got, err := svc.Get(ctx, user.ID, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.ID, got.ID)
		assert.True(t, got.Amount.Equal(decimal.NewFromFloat(10.0)))
	})

	t.Run("OtherUser", func(t *testing.T) {
		stranger := newTestUser(t, db, "stranger@example.com")

		_, err := svc.Get(ctx, stranger.ID, payment.ID)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := svc.Get(ctx, user.ID, 9999)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}
