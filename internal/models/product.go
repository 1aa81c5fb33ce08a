package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products for catalog browsing.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a product in the store catalog. The core treats it as
// read-only: order line items carry a snapshot of Price, never a live reference.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"required"`
	CategoryID  string          `json:"category_id" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Color       string          `json:"color" validate:"omitempty,max=50"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"image_url" validate:"omitempty,max=255"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
