package repository

import (
	"context"
	"ecommerce-api/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	ExistsForOrder(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error)
	// FindByIDForUser resolves a payment through its owning order so a
	// caller can only see payments on their own orders.
	FindByIDForUser(ctx context.Context, paymentID, userID uint) (*model.Payment, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) ExistsForOrder(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) FindByIDForUser(ctx context.Context, paymentID, userID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("payments.id = ? AND orders.user_id = ?", paymentID, userID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}
