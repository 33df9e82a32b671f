package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	PaymentStatusCompleted = "completed"
)

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword string `gorm:"size:255;not null"`
	IsActive       bool   `gorm:"not null;default:true"`
	FullName       string `gorm:"size:255"`
	CreatedAt      time.Time

	Orders []Order `gorm:"foreignKey:UserID"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

type Order struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Status      string          `gorm:"size:50;index;not null"` // pending, paid
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time

	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Payment *Payment    `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	// price snapshot at order time, decoupled from later product price changes
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

type Payment struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"size:50;not null"`
	Provider      string          `gorm:"size:50"`
	TransactionID string          `gorm:"size:255"`
	CreatedAt     time.Time
}
