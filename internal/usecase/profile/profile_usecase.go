package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// CreateProfileRequest is the onboarding save payload
type CreateProfileRequest struct {
	DisplayName string   `json:"display_name" binding:"required"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Interests   []string `json:"interests"`
	Photos      []string `json:"photos"`
	LocationLat *float64 `json:"location_lat"`
	LocationLon *float64 `json:"location_lon"`
}

// UpdateProfileRequest mirrors CreateProfileRequest for edits
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Interests   []string `json:"interests"`
	Photos      []string `json:"photos"`
	LocationLat *float64 `json:"location_lat"`
	LocationLon *float64 `json:"location_lon"`
}

// ProfileResponse is the display-facing view with derived age
type ProfileResponse struct {
	ID          int      `json:"id"`
	UserID      int      `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Interests   []string `json:"interests"`
	Photos      []string `json:"photos"`
}

// GetProfile returns the profile for a user with photos reconciled against
// the user row (users.photos is the source of truth).
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.reconcilePhotos(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to reconcile photos: %w", err)
	}

	return toResponse(user, profile), nil
}

// CompleteOnboarding lazily creates the profile on the first onboarding
// save and marks the user onboarded.
func (uc *ProfileUseCase) CompleteOnboarding(ctx context.Context, userID int, req *CreateProfileRequest) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		City:        req.City,
		Interests:   req.Interests,
		Photos:      req.Photos,
		LocationLat: req.LocationLat,
		LocationLon: req.LocationLon,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	user.Photos = req.Photos
	user.Interests = req.Interests
	user.Bio = req.Bio
	user.IsOnboardingComplete = true
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toResponse(user, profile), nil
}

// UpdateProfile applies a partial edit. Photo edits land on the user row
// first so reads keep reconciling from the source of truth.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
		user.Bio = req.Bio
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.Interests != nil {
		profile.Interests = req.Interests
		user.Interests = req.Interests
	}
	if req.Photos != nil {
		profile.Photos = req.Photos
		user.Photos = req.Photos
	}
	if req.LocationLat != nil {
		profile.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		profile.LocationLon = req.LocationLon
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return toResponse(user, profile), nil
}

// reconcilePhotos copies users.photos over a stale profiles.photos copy.
func (uc *ProfileUseCase) reconcilePhotos(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	if slices.Equal(user.Photos, profile.Photos) {
		return nil
	}
	profile.Photos = user.Photos
	return uc.profileRepo.UpdatePhotos(ctx, user.ID, user.Photos)
}

func toResponse(user *domain.User, profile *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:          profile.ID,
		UserID:      user.ID,
		DisplayName: profile.DisplayName,
		Age:         user.Age(),
		Bio:         profile.Bio,
		City:        profile.City,
		Interests:   profile.Interests,
		Photos:      profile.Photos,
	}
}
