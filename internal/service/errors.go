package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")

	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrEmptyOrder        = errors.New("order must contain items")
	ErrInvalidQuantity   = errors.New("item quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrAmountMismatch   = errors.New("payment amount must equal order total_amount")
	ErrOrderAlreadyPaid = errors.New("payment already exists for order")
)
