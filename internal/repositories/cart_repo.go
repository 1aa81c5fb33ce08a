package repositories

import (
	"gorm.io/gorm"

	"storefront/internal/models"
)

// CartRepository defines the interface for shopping cart data access.
// Add must be a single atomic insert-or-increment so concurrent adds for the
// same (user, product) pair never lose an update or duplicate a row.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartLine, error)
	Add(userID, productID string) error
	SetQuantity(userID, productID string, quantity int) error
	Exists(userID, productID string) (bool, error)
	Clear(userID string) error

	// WithTx returns a view of the repository bound to the given transaction.
	// Implementations without transaction support return themselves.
	WithTx(tx *gorm.DB) CartRepository
}
