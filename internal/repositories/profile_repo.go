package repositories

import "storefront/internal/models"

// ProfileRepository defines the interface for user profile data access.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByUserID(userID string) (*models.Profile, error)
	Update(profile *models.Profile) error
}
