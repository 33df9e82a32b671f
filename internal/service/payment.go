package service

import (
	"context"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	Create(ctx context.Context, userID uint, req *dto.CreatePaymentRequest) (*model.Payment, error)
	Get(ctx context.Context, userID, paymentID uint) (*model.Payment, error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// Create records a settlement against an order. The amount must equal
// the order total exactly, and an order can be paid at most once; the
// payment insert and the order status flip commit together.
func (s *paymentServiceImpl) Create(ctx context.Context, userID uint, req *dto.CreatePaymentRequest) (*model.Payment, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, req.OrderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	if !req.Amount.Equal(order.TotalAmount) {
		return nil, ErrAmountMismatch
	}

	// No gateway call here: the status is a stub outcome and the
	// transaction id is generated locally.
	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        req.Amount,
		Status:        model.PaymentStatusCompleted,
		Provider:      req.Provider,
		TransactionID: uuid.NewString(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.paymentRepo.ExistsForOrder(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("check existing payment: %w", err)
		}
		if exists {
			return ErrOrderAlreadyPaid
		}

		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		return s.orderRepo.MarkPaid(ctx, tx, order.ID)
	})

	if err != nil {
		return nil, err
	}

	logger.L().Info("payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", order.ID),
		zap.String("amount", payment.Amount.String()),
	)

	return payment, nil
}

func (s *paymentServiceImpl) Get(ctx context.Context, userID, paymentID uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByIDForUser(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return payment, nil
}
