package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// Create creates a new profile for a user.
func (r *GORMProfileRepository) Create(profile *models.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile for user %s: %w", profile.UserID, err)
	}
	return nil
}

// GetByUserID retrieves the profile for a user.
func (r *GORMProfileRepository) GetByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// Update overwrites an existing profile.
func (r *GORMProfileRepository) Update(profile *models.Profile) error {
	res := r.db.Save(profile)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile for user %s: %w", profile.UserID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile for user %s: %w", profile.UserID, apperrors.ErrNotFound)
	}
	return nil
}
