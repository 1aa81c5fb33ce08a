package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineItem is the permanent record of one product sold on an order.
// Price and Discount are snapshots taken at checkout time; they are never
// recomputed from the live catalog afterward.
type OrderLineItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36);not null"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount  decimal.Decimal `json:"discount" gorm:"type:decimal(4,3);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
}

// Order represents a completed checkout. Immutable after creation except for
// the repository-assigned ID; TotalAmount is frozen at checkout time.
type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string          `json:"user_id" gorm:"index;type:varchar(36);not null"`
	OrderDate      time.Time       `json:"order_date"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zip            string          `json:"zip"`
	ShippingAmount decimal.Decimal `json:"shipping_amount" gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	LineItems      []OrderLineItem `json:"line_items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"created_at"`
}
