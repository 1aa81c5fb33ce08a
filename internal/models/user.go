package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Profile holds a user's contact and shipping details, one row per user.
// Checkout reads the address fields from here to build the order's
// ShippingInfo.
type Profile struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  string    `json:"last_name" validate:"omitempty,max=100"`
	Phone     string    `json:"phone" validate:"omitempty,max=30"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Address   string    `json:"address" validate:"omitempty,max=255"`
	City      string    `json:"city" validate:"omitempty,max=100"`
	State     string    `json:"state" validate:"omitempty,max=100"`
	Zip       string    `json:"zip" validate:"omitempty,max=20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShippingInfo is the opaque shipping input consumed by checkout, usually
// derived from the user's profile.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}
