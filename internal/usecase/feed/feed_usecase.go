package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

type FeedUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
}

func NewFeedUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
) *FeedUseCase {
	return &FeedUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
	}
}

// FeedCandidate is one card in the discovery deck
type FeedCandidate struct {
	UserID      int      `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Interests   []string `json:"interests"`
	Photos      []string `json:"photos"`
}

// candidateBatchSize bounds how many rows one feed request scans while
// filtering out off-orientation users.
const candidateBatchSize = 50

// GetNextCandidate returns the next discovery card, excluding the caller,
// everyone the caller has already swiped on, and off-orientation users.
func (uc *FeedUseCase) GetNextCandidate(ctx context.Context, userID int) (*FeedCandidate, error) {
	viewer, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	swipedIDs, err := uc.swipeRepo.ListSwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	if swipedIDs == nil {
		swipedIDs = []int{}
	}

	candidates, err := uc.userRepo.ListCandidates(ctx, userID, swipedIDs, candidateBatchSize)
	if err != nil {
		return nil, err
	}

	for _, user := range candidates {
		// Orientation is checked both ways: neither side gets shown
		// someone outside their preference.
		if !viewer.WantsGender(user.Gender) || !user.WantsGender(viewer.Gender) {
			continue
		}
		return uc.buildCandidate(ctx, user)
	}
	return nil, domain.ErrUserNotFound
}

func (uc *FeedUseCase) buildCandidate(ctx context.Context, user *domain.User) (*FeedCandidate, error) {
	candidate := &FeedCandidate{
		UserID:      user.ID,
		DisplayName: user.Name,
		Age:         user.Age(),
		Bio:         user.Bio,
		Interests:   user.Interests,
		Photos:      user.Photos,
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return candidate, nil
	}
	candidate.DisplayName = profile.DisplayName
	candidate.City = profile.City
	return candidate, nil
}
