package services

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService handles the read side of orders. Orders are created only by
// CheckoutService and are never mutated afterwards.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetOrdersForUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderForUser retrieves a single order, enforcing that it belongs to the
// given user. An order owned by someone else is reported as not found.
func (s *OrderService) GetOrderForUser(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, apperrors.ErrNotFound)
	}
	return order, nil
}
