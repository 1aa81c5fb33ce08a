package repositories

import (
	"gorm.io/gorm"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access. Orders and
// their line items are append-only: there are no update or delete operations.
type OrderRepository interface {
	// CreateOrder inserts the order header and assigns its ID.
	CreateOrder(order *models.Order) error
	// AddLineItem inserts one line item; the order ID must already be assigned.
	AddLineItem(item *models.OrderLineItem) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	CountLineItems(orderID string) (int64, error)

	// WithTx returns a view of the repository bound to the given transaction.
	WithTx(tx *gorm.DB) OrderRepository
}
