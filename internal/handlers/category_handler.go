package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// CategoryHandler handles HTTP requests for catalog categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Get("/:id/products", h.HandleGetCategoryProducts)
	categoryRoutes.Post("/", h.HandleCreateCategory)
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting all categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	category, err := h.service.GetCategoryByID(categoryID)
	if err != nil {
		log.Printf("Error getting category by ID %s: %v", categoryID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not retrieve category"),
		})
	}
	return c.JSON(category)
}

// HandleGetCategoryProducts retrieves all products in a category.
func (h *CategoryHandler) HandleGetCategoryProducts(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	products, err := h.service.ListProducts(categoryID)
	if err != nil {
		log.Printf("Error listing products for category %s: %v", categoryID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not retrieve products"),
		})
	}
	return c.JSON(products)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(category); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
