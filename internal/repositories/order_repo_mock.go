package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	items  map[string][]models.OrderLineItem
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		items:  make(map[string][]models.OrderLineItem),
	}
}

// WithTx returns the repository itself; the mock has no transactions.
func (r *MockOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return r
}

// CreateOrder adds a new order header and assigns its ID.
func (r *MockOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	stored := *order
	stored.LineItems = nil
	r.orders[order.ID] = stored
	return nil
}

// AddLineItem appends a line item to a previously created order.
func (r *MockOrderRepository) AddLineItem(item *models.OrderLineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.OrderID == "" {
		return fmt.Errorf("line item is missing an order ID: %w", apperrors.ErrInvalidArgument)
	}
	if _, ok := r.orders[item.OrderID]; !ok {
		return fmt.Errorf("order with ID %s: %w", item.OrderID, apperrors.ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.OrderID] = append(r.items[item.OrderID], *item)
	return nil
}

// GetByID returns an order with its line items.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	order.LineItems = append([]models.OrderLineItem(nil), r.items[id]...)
	return &order, nil
}

// GetByUser returns all orders for a user with their line items.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for id, order := range r.orders {
		if order.UserID == userID {
			order.LineItems = append([]models.OrderLineItem(nil), r.items[id]...)
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// CountLineItems returns the number of line items stored for an order.
func (r *MockOrderRepository) CountLineItems(orderID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items[orderID])), nil
}
