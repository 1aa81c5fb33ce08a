package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// WithTx returns a repository view bound to the given transaction.
func (r *GORMCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &GORMCartRepository{db: tx}
}

// GetByUser retrieves all cart lines for a user. A user with no cart yields
// an empty slice, not an error.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Find(&lines, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return lines, nil
}

// Add inserts a cart line with quantity 1, or increments the existing line's
// quantity. The insert-or-increment is one upsert statement, so two
// concurrent adds for the same pair cannot race each other.
func (r *GORMCartRepository) Add(userID, productID string) error {
	line := models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", 1),
		}),
	}).Create(&line).Error
	if err != nil {
		return fmt.Errorf("failed to add product %s to cart for user %s: %w", productID, userID, err)
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing cart line.
func (r *GORMCartRepository) SetQuantity(userID, productID string, quantity int) error {
	res := r.db.Model(&models.CartLine{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update quantity for product %s in cart of user %s: %w", productID, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}

// Exists reports whether the user's cart contains the given product.
func (r *GORMCartRepository) Exists(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CartLine{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cart for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// Clear deletes all cart lines for a user. Clearing an empty cart is a no-op.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Delete(&models.CartLine{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
