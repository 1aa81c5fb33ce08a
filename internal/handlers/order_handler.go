package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
	"storefront/internal/services"
)

// OrderHandler handles checkout and the order read endpoints.
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
	profileService  *services.ProfileService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkoutService *services.CheckoutService, orderService *services.OrderService, profileService *services.ProfileService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		profileService:  profileService,
	}
}

// RegisterRoutes registers the checkout and order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/cart/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleCheckout converts the user's cart into an order. The shipping address
// comes from the user's profile; the cart must contain at least one line whose
// product still exists in the catalog.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	shipping, err := h.profileService.ShippingInfo(userID)
	if err != nil {
		log.Printf("Error resolving shipping info for user %s: %v", userID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "A shipping profile is required before checkout",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve shipping information",
		})
	}

	order, err := h.checkoutService.Checkout(userID, shipping)
	if err != nil {
		log.Printf("Error during checkout for user %s: %v", userID, err)
		if errors.Is(err, apperrors.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Shopping cart is empty",
			})
		}
		// Storage failures rolled the transaction back; the cart is intact
		// and the caller may retry.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves all orders belonging to the authenticated user.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	orders, err := h.orderService.GetOrdersForUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order owned by the authenticated user.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}
	orderID := c.Params("id")

	order, err := h.orderService.GetOrderForUser(userID, orderID)
	if err != nil {
		log.Printf("Error getting order %s for user %s: %v", orderID, userID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not retrieve order"),
		})
	}
	return c.JSON(order)
}
