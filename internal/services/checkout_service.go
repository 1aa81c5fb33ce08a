package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderEventPublisher publishes order events after a successful checkout.
type OrderEventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutService converts a priced cart into a permanent order. The order
// header, every line item, and the cart clear are written inside one database
// transaction: either the whole checkout commits or none of it does.
type CheckoutService struct {
	db          *gorm.DB
	cartService *CartService
	cartRepo    repositories.CartRepository
	orderRepo   repositories.OrderRepository
	publisher   OrderEventPublisher
	shipping    decimal.Decimal
}

// NewCheckoutService creates a new CheckoutService. shipping is the flat
// shipping amount added to every order. publisher may be nil, in which case
// no events are emitted.
func NewCheckoutService(
	db *gorm.DB,
	cartService *CartService,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	publisher OrderEventPublisher,
	shipping decimal.Decimal,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartService: cartService,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		shipping:    shipping,
	}
}

// Checkout turns the user's cart into an order.
//
// It prices the cart, freezes each line's unit price and discount into order
// line items, and clears the cart. Validation happens before any write: a
// cart with no resolvable lines fails with ErrEmptyCart and creates nothing.
// The header insert, the line-item inserts and the cart clear run in a single
// transaction, so a failure at any point leaves the cart exactly as it was
// and no partial order visible. The caller may simply retry.
func (s *CheckoutService) Checkout(userID string, shipping models.ShippingInfo) (*models.Order, error) {
	cart, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to price cart for checkout: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	order := &models.Order{
		UserID:         userID,
		OrderDate:      time.Now(),
		Address:        shipping.Address,
		City:           shipping.City,
		State:          shipping.State,
		Zip:            shipping.Zip,
		ShippingAmount: s.shipping,
		TotalAmount:    cart.Total.Add(s.shipping),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		carts := s.cartRepo.WithTx(tx)

		// Header first: line items need a valid order ID.
		if err := orders.CreateOrder(order); err != nil {
			return err
		}

		for _, item := range cart.Items {
			lineItem := models.OrderLineItem{
				OrderID:   order.ID,
				ProductID: item.Product.ID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Discount:  item.DiscountPercent,
			}
			if err := orders.AddLineItem(&lineItem); err != nil {
				return err
			}
			order.LineItems = append(order.LineItems, lineItem)
		}

		// Cart clear is the last write so a failure above leaves the cart
		// intact and the checkout retryable.
		return carts.Clear(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("checkout transaction failed: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits an order.created event. The order is already
// committed, so a publish failure is logged and swallowed.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Order event publisher is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalAmount,
		"items":   len(order.LineItems),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}

	if err := s.publisher.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order created event for order %s", order.ID)
}
