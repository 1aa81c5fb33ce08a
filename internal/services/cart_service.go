package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for the shopping cart: the persisted
// per-user cart lines plus the priced view joining them with live catalog data.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the priced cart for a user. Each line is joined with the
// current catalog price; lines whose product no longer exists are omitted
// from the view but left in the store. A user with no cart rows gets an
// empty cart with a zero total, not an error.
func (s *CartService) GetCart(userID string) (*models.ShoppingCart, error) {
	lines, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines for user %s: %w", userID, err)
	}

	cart := &models.ShoppingCart{
		Items: make([]models.CartItem, 0, len(lines)),
		Total: decimal.Zero,
	}

	one := decimal.NewFromInt(1)
	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Stale reference: the product left the catalog after it was
				// added to the cart. Skip the line, keep the row.
				continue
			}
			return nil, fmt.Errorf("failed to resolve product %s: %w", line.ProductID, err)
		}

		lineTotal := product.Price.
			Mul(decimal.NewFromInt(int64(line.Quantity))).
			Mul(one.Sub(line.DiscountPercent))

		cart.Items = append(cart.Items, models.CartItem{
			Product:         *product,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			LineTotal:       lineTotal,
		})
		cart.Total = cart.Total.Add(lineTotal)
	}

	return cart, nil
}

// AddProduct adds one unit of a product to the user's cart. Adding a product
// already in the cart increments its quantity; the repository performs the
// insert-or-increment atomically.
func (s *CartService) AddProduct(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("cannot add product %s to cart: %w", productID, err)
	}
	if err := s.cartRepo.Add(userID, productID); err != nil {
		return fmt.Errorf("failed to add product to cart: %w", err)
	}
	return nil
}

// UpdateQuantity overwrites the quantity of an existing cart line. The line
// must exist and the quantity must be at least 1; both checks happen before
// any write.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, apperrors.ErrInvalidArgument)
	}

	exists, err := s.cartRepo.Exists(userID, productID)
	if err != nil {
		return fmt.Errorf("failed to check cart line: %w", err)
	}
	if !exists {
		return fmt.Errorf("product %s is not in the cart: %w", productID, apperrors.ErrNotFound)
	}

	if err := s.cartRepo.SetQuantity(userID, productID, quantity); err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return nil
}

// ClearCart removes all lines from the user's cart. Clearing an empty cart
// is a no-op.
func (s *CartService) ClearCart(userID string) error {
	if err := s.cartRepo.Clear(userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
