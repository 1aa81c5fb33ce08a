package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleSaveProfile)
}

// HandleGetProfile retrieves the authenticated user's profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": clientMessage(err, "Could not retrieve profile"),
		})
	}
	return c.JSON(profile)
}

// HandleSaveProfile creates or updates the authenticated user's profile.
// The profile's user ID always comes from the token, never the body.
func (h *ProfileHandler) HandleSaveProfile(c *fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User identity is missing",
		})
	}

	var profile models.Profile
	if err := c.BodyParser(&profile); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	profile.UserID = userID

	if err := h.service.SaveProfile(&profile); err != nil {
		log.Printf("Error saving profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile",
		})
	}
	return c.JSON(profile)
}
