package repository

import (
	"context"
	"ecommerce-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context, skip, limit int) ([]*model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Product, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	// DecrementStock debits stock only when enough is available and
	// reports whether the debit applied. The guarded update keeps two
	// concurrent orders from overselling the same product.
	DecrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) List(ctx context.Context, skip, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Offset(skip).
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *productRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
