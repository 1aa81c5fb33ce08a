package services

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProfileService handles business logic for user profiles, including the
// shipping address consumed by checkout.
type ProfileService struct {
	repo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// GetProfile retrieves the profile for a user.
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	return s.repo.GetByUserID(userID)
}

// SaveProfile creates the user's profile on first save and overwrites it
// afterwards.
func (s *ProfileService) SaveProfile(profile *models.Profile) error {
	_, err := s.repo.GetByUserID(profile.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.repo.Create(profile)
		}
		return fmt.Errorf("failed to load profile for user %s: %w", profile.UserID, err)
	}
	return s.repo.Update(profile)
}

// ShippingInfo resolves the user's shipping address for checkout.
func (s *ProfileService) ShippingInfo(userID string) (models.ShippingInfo, error) {
	profile, err := s.repo.GetByUserID(userID)
	if err != nil {
		return models.ShippingInfo{}, err
	}
	return models.ShippingInfo{
		Address: profile.Address,
		City:    profile.City,
		State:   profile.State,
		Zip:     profile.Zip,
	}, nil
}
