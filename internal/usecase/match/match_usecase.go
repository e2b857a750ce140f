package match

import (
	"context"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// MatchListItem is one row of the matches screen: the match, the
// counterpart's display profile and the last message if any.
type MatchListItem struct {
	Match       *domain.Match   `json:"match"`
	Profile     *Counterpart    `json:"profile"`
	LastMessage *domain.Message `json:"last_message,omitempty"`
}

type Counterpart struct {
	UserID      int      `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Bio         *string  `json:"bio"`
	Photos      []string `json:"photos"`
}

// ListMatches returns the caller's active matches, newest first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID int) ([]*MatchListItem, error) {
	matches, err := uc.matchRepo.GetActiveMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*MatchListItem, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}

		counterpart, err := uc.counterpart(ctx, otherID)
		if err != nil {
			continue
		}

		item := &MatchListItem{Match: m, Profile: counterpart}
		if last, err := uc.messageRepo.GetLastByMatch(ctx, m.ID); err == nil {
			item.LastMessage = last
		}
		items = append(items, item)
	}
	return items, nil
}

// Unmatch deactivates a match; only a participant may do it.
func (uc *MatchUseCase) Unmatch(ctx context.Context, userID, matchID int) error {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.HasUser(userID) {
		return domain.ErrMatchNotFound
	}
	return uc.matchRepo.UpdateStatus(ctx, matchID, false)
}

func (uc *MatchUseCase) counterpart(ctx context.Context, userID int) (*Counterpart, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		// Onboarding may be incomplete; fall back to the user row.
		return &Counterpart{
			UserID:      user.ID,
			DisplayName: user.Name,
			Age:         user.Age(),
			Bio:         user.Bio,
			Photos:      user.Photos,
		}, nil
	}
	return &Counterpart{
		UserID:      user.ID,
		DisplayName: profile.DisplayName,
		Age:         user.Age(),
		Bio:         profile.Bio,
		Photos:      user.Photos,
	}, nil
}
