package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a shop customer. Email is the upsert conflict key.
type Customer struct {
	CustomerID uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:140;not null"`
	Email      string `gorm:"size:140;uniqueIndex;not null"`
	Phone      string `gorm:"size:40"`
}

// Product is a catalog entry. Read-only from this component's point of
// view; name is the lookup key.
type Product struct {
	ProductID uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:140;uniqueIndex;not null"`
	BasePrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// Order carries a free-form status string; no transition table is
// enforced. OrderDate is defaulted by the store.
type Order struct {
	OrderID    uint      `gorm:"primaryKey"`
	CustomerID uint      `gorm:"not null;index"`
	Status     string    `gorm:"size:32;not null"`
	OrderDate  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Customer *Customer `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a single line on an order. UnitPrice is snapshotted from
// the product at creation time and never re-read afterwards. Specs holds
// an opaque JSON payload.
type OrderItem struct {
	OrderItemID uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null;index"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CustomText  string          `gorm:"size:255"`
	Font        string          `gorm:"size:64"`
	Color       string          `gorm:"size:64"`
	Specs       string

	Order   *Order   `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID"`
}

// Payment records money received against an order. Amount is an exact
// decimal; nothing ties payment totals to order totals, so partial and
// over-payment pass through unchecked. PaidAt is defaulted by the store.
type Payment struct {
	PaymentID uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method    string          `gorm:"size:32;not null"`
	PaidAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Order *Order `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}
