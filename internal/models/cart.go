package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, product) pairing in a user's cart. The pair is the
// primary key, so a product can appear at most once per user; repeat adds
// increment Quantity instead of inserting a second row.
type CartLine struct {
	UserID          string          `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID       string          `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	Quantity        int             `json:"quantity" gorm:"not null" validate:"gte=1"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:decimal(4,3);not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CartItem is one cart line joined with live catalog data. LineTotal is
// quantity x unit price x (1 - discount), computed at read time.
type CartItem struct {
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// ShoppingCart is the priced view of a user's cart. It is never persisted;
// Total always reflects current catalog prices until checkout freezes them.
type ShoppingCart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
