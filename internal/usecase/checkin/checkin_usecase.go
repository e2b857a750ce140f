package checkin

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

type CheckInUseCase struct {
	checkInRepo repository.CheckInRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewCheckInUseCase(
	checkInRepo repository.CheckInRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) *CheckInUseCase {
	return &CheckInUseCase{
		checkInRepo: checkInRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (uc *CheckInUseCase) ListEstablishments(ctx context.Context, category string) ([]*domain.Establishment, error) {
	return uc.checkInRepo.ListEstablishments(ctx, category)
}

// CheckIn records the user at an establishment. Any previous active
// check-in is deactivated first so at most one stays active.
func (uc *CheckInUseCase) CheckIn(ctx context.Context, userID, establishmentID int) (*domain.CheckIn, error) {
	if _, err := uc.checkInRepo.GetEstablishment(ctx, establishmentID); err != nil {
		return nil, err
	}

	if err := uc.checkInRepo.DeactivateForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear previous check-in: %w", err)
	}

	checkIn := &domain.CheckIn{
		UserID:          userID,
		EstablishmentID: establishmentID,
		IsActive:        true,
	}
	if err := uc.checkInRepo.CreateCheckIn(ctx, checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// CheckOut deactivates the user's active check-in.
func (uc *CheckInUseCase) CheckOut(ctx context.Context, userID int) error {
	if _, err := uc.checkInRepo.GetActiveByUser(ctx, userID); err != nil {
		return err
	}
	return uc.checkInRepo.DeactivateForUser(ctx, userID)
}

// ActiveVisitor pairs an active check-in with the visitor's display info
type ActiveVisitor struct {
	CheckIn     *domain.CheckIn `json:"check_in"`
	UserID      int             `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Age         int             `json:"age"`
	Photos      []string        `json:"photos"`
}

// ListActiveVisitors returns who is currently checked in at an establishment.
func (uc *CheckInUseCase) ListActiveVisitors(ctx context.Context, establishmentID int) ([]*ActiveVisitor, error) {
	if _, err := uc.checkInRepo.GetEstablishment(ctx, establishmentID); err != nil {
		return nil, err
	}

	checkIns, err := uc.checkInRepo.ListActiveByEstablishment(ctx, establishmentID)
	if err != nil {
		return nil, err
	}

	visitors := make([]*ActiveVisitor, 0, len(checkIns))
	for _, ci := range checkIns {
		user, err := uc.userRepo.GetByID(ctx, ci.UserID)
		if err != nil {
			continue
		}
		visitor := &ActiveVisitor{
			CheckIn:     ci,
			UserID:      user.ID,
			DisplayName: user.Name,
			Age:         user.Age(),
			Photos:      user.Photos,
		}
		if profile, err := uc.profileRepo.GetByUserID(ctx, ci.UserID); err == nil {
			visitor.DisplayName = profile.DisplayName
		} else if !errors.Is(err, domain.ErrProfileNotFound) {
			continue
		}
		visitors = append(visitors, visitor)
	}
	return visitors, nil
}
