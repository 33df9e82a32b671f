package service

import (
	"context"
	"ecommerce-api/internal/dto"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, user *model.User, req *dto.CreateOrderRequest) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Order, error)
	Get(ctx context.Context, userID, orderID uint) (*model.Order, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewOrderService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Create places an order: per item it checks stock, debits it through
// a guarded update and snapshots the unit price. Everything runs in
// one transaction so a failing item rolls back all prior debits.
func (s *orderServiceImpl) Create(ctx context.Context, user *model.User, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}
	}

	status := req.Status
	if status == "" {
		status = model.OrderStatusPending
	}

	order := &model.Order{
		UserID: user.ID,
		Status: status,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		totalAmount := decimal.Zero
		orderItems := make([]*model.OrderItem, len(req.Items))

		for i, item := range req.Items {
			product, err := s.productRepo.FindByIDTx(ctx, tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
				}
				return fmt.Errorf("load product %d: %w", item.ProductID, err)
			}

			applied, err := s.productRepo.DecrementStock(ctx, tx, product.ID, item.Quantity)
			if err != nil {
				return fmt.Errorf("debit stock for product %d: %w", product.ID, err)
			}
			if !applied {
				return fmt.Errorf("%w for product %d", ErrInsufficientStock, product.ID)
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalAmount = totalAmount.Add(lineTotal)

			orderItems[i] = &model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			}
		}

		order.TotalAmount = totalAmount
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		for _, item := range orderItems {
			order.Items = append(order.Items, *item)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.L().Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", user.ID),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	return order, nil
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

// Get is scoped to the caller: an order owned by someone else looks
// exactly like a missing one.
func (s *orderServiceImpl) Get(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}
