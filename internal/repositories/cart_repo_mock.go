package repositories

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

type cartKey struct {
	userID    string
	productID string
}

// MockCartRepository is an in-memory implementation of CartRepository. Each
// call holds the mutex for its full duration, matching the atomicity the GORM
// implementation gets from single statements.
type MockCartRepository struct {
	lines map[cartKey]models.CartLine
	mu    sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[cartKey]models.CartLine),
	}
}

// WithTx returns the repository itself; the mock has no transactions.
func (r *MockCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return r
}

// GetByUser returns all cart lines for a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]models.CartLine, 0)
	for key, line := range r.lines {
		if key.userID == userID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Add inserts a line with quantity 1 or increments the existing one.
func (r *MockCartRepository) Add(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID: userID, productID: productID}
	line, ok := r.lines[key]
	if !ok {
		line = models.CartLine{UserID: userID, ProductID: productID, Quantity: 0}
	}
	line.Quantity++
	r.lines[key] = line
	return nil
}

// SetQuantity overwrites the quantity of an existing line.
func (r *MockCartRepository) SetQuantity(userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID: userID, productID: productID}
	line, ok := r.lines[key]
	if !ok {
		return fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	line.Quantity = quantity
	r.lines[key] = line
	return nil
}

// SetDiscount sets the discount on an existing line. Not part of the
// CartRepository contract; tests use it to seed discounted lines.
func (r *MockCartRepository) SetDiscount(userID, productID string, discount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID: userID, productID: productID}
	line, ok := r.lines[key]
	if !ok {
		return fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	line.DiscountPercent = discount
	r.lines[key] = line
	return nil
}

// Exists reports whether the user's cart contains the given product.
func (r *MockCartRepository) Exists(userID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.lines[cartKey{userID: userID, productID: productID}]
	return ok, nil
}

// Clear removes all lines for a user.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.lines {
		if key.userID == userID {
			delete(r.lines, key)
		}
	}
	return nil
}
