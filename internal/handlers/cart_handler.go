package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/products/:productId", h.HandleAddProduct)
	cartRoutes.Put("/products/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// userIDFromContext reads the user ID stored by the auth middleware.
func userIDFromContext(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}

// HandleGetCart returns the priced cart for the authenticated user.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not retrieve cart"),
		})
	}
	return c.JSON(cart)
}

// HandleAddProduct adds one unit of a product to the cart and returns the
// updated priced cart. Repeating the call increments the quantity of the
// existing line.
func (h *CartHandler) HandleAddProduct(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}
	productID := c.Params("productId")

	if err := h.cartService.AddProduct(userID, productID); err != nil {
		log.Printf("Error adding product %s to cart for user %s: %v", productID, userID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not add product to cart"),
		})
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		log.Printf("Error reloading cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// UpdateQuantityRequest represents the request body for a quantity update.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity overwrites the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}
	productID := c.Params("productId")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.cartService.UpdateQuantity(userID, productID, req.Quantity); err != nil {
		log.Printf("Error updating quantity for product %s in cart of user %s: %v", productID, userID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not update cart quantity"),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Quantity updated",
	})
}

// HandleClearCart removes every line from the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	if err := h.cartService.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
