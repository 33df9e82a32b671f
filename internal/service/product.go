package service

import (
	"context"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error)
	List(ctx context.Context, skip, limit int) ([]*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) List(ctx context.Context, skip, limit int) ([]*model.Product, error) {
	return s.productRepo.List(ctx, skip, limit)
}

func (s *productServiceImpl) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

// Update applies only the fields the caller supplied; absent fields
// keep their stored values.
func (s *productServiceImpl) Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *productServiceImpl) Delete(ctx context.Context, id uint) error {
	// No guard against order items referencing this product: their
	// unit-price snapshots keep historical orders meaningful.
	err := s.productRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}
