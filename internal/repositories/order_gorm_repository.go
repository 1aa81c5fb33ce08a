package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// WithTx returns a repository view bound to the given transaction.
func (r *GORMOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GORMOrderRepository{db: tx}
}

// CreateOrder inserts the order header and assigns its ID. Line items held on
// the struct are not inserted here; checkout appends them one by one after
// the header exists.
func (r *GORMOrderRepository) CreateOrder(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Omit("LineItems").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// AddLineItem inserts one line item for a previously created order.
func (r *GORMOrderRepository) AddLineItem(item *models.OrderLineItem) error {
	if item.OrderID == "" {
		return fmt.Errorf("line item is missing an order ID: %w", apperrors.ErrInvalidArgument)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add line item to order %s: %w", item.OrderID, err)
	}
	return nil
}

// GetByID retrieves an order with its line items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("LineItems").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders for a user, newest first, with line items.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("LineItems").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// CountLineItems returns the number of line items stored for an order.
func (r *GORMOrderRepository) CountLineItems(orderID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderLineItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count line items for order %s: %w", orderID, err)
	}
	return count, nil
}
