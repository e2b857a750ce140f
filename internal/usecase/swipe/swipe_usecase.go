package swipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emberlink/emberlink-backend/internal/cache"
	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/infrastructure/gemini"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

// Notifier pushes realtime frames to a user's live connections. Delivery
// is best effort; a nil Notifier disables pushes.
type Notifier interface {
	SendToUser(userID int, frameType string, data interface{})
}

type SwipeUseCase struct {
	swipeRepo    repository.SwipeRepository
	matchRepo    repository.MatchRepository
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	cache        *cache.RedisCache
	notifier     Notifier
	geminiClient *gemini.Client
	dailyLikes   int
	log          *slog.Logger
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	redisCache *cache.RedisCache,
	notifier Notifier,
	geminiClient *gemini.Client,
	dailyLikes int,
	log *slog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:    swipeRepo,
		matchRepo:    matchRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		cache:        redisCache,
		notifier:     notifier,
		geminiClient: geminiClient,
		dailyLikes:   dailyLikes,
		log:          log,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	SwipedID int    `json:"swiped_id" binding:"required"`
	Type     string `json:"type" binding:"required,swipetype"`
}

// MatchProfile is the counterpart's display profile returned on a match
type MatchProfile struct {
	UserID      int      `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Bio         *string  `json:"bio"`
	City        *string  `json:"city"`
	Photos      []string `json:"photos"`
}

// SwipeResult is a tagged result: callers branch on Matched, and MatchID /
// MatchProfile are only populated when it is true.
type SwipeResult struct {
	Matched      bool          `json:"match"`
	Swipe        *domain.Swipe `json:"swipe"`
	MatchID      *int          `json:"match_id,omitempty"`
	MatchProfile *MatchProfile `json:"match_profile,omitempty"`
}

// CreateSwipe appends a swipe to the ledger and, for likes, runs the
// reciprocity check against the latest reverse swipe. Re-swiping the same
// target is allowed; the newest row is the current decision.
func (uc *SwipeUseCase) CreateSwipe(ctx context.Context, swiperID int, req *SwipeRequest) (*SwipeResult, error) {
	isLike := req.Type == domain.SwipeTypeLike
	return uc.recordSwipe(ctx, swiperID, req.SwipedID, isLike, false)
}

// SuperLike runs the same reciprocity path with the super-like flag set.
func (uc *SwipeUseCase) SuperLike(ctx context.Context, swiperID, swipedID int) (*SwipeResult, error) {
	return uc.recordSwipe(ctx, swiperID, swipedID, true, true)
}

func (uc *SwipeUseCase) recordSwipe(ctx context.Context, swiperID, swipedID int, isLike, isSuperLike bool) (*SwipeResult, error) {
	if swiperID == swipedID {
		return nil, domain.ErrCannotSwipeSelf
	}

	swiper, err := uc.userRepo.GetByID(ctx, swiperID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.GetByID(ctx, swipedID); err != nil {
		return nil, err
	}

	if isLike && !swiper.IsPremium() {
		count, err := uc.cache.IncrDailyLikes(ctx, swiperID)
		if err != nil {
			// Counter loss must not block swiping; log and continue.
			uc.log.Warn("daily like counter unavailable", "err", err)
		} else if count > int64(uc.dailyLikes) {
			return nil, domain.ErrDailyLikeLimit
		}
	}

	swipe := &domain.Swipe{
		SwiperID:    swiperID,
		SwipedID:    swipedID,
		IsLike:      isLike,
		IsSuperLike: isSuperLike,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to create swipe: %w", err)
	}

	result := &SwipeResult{Matched: false, Swipe: swipe}
	if !isLike {
		return result, nil
	}

	reverse, err := uc.swipeRepo.GetLatestBetween(ctx, swipedID, swiperID)
	if err != nil {
		if errors.Is(err, domain.ErrSwipeNotFound) {
			return result, nil
		}
		uc.log.Error("reciprocity lookup failed", "err", err)
		return result, nil
	}
	if !reverse.IsLike {
		return result, nil
	}

	match, err := uc.resolveMatch(ctx, swiperID, swipedID)
	if err != nil {
		uc.log.Error("match creation failed", "err", err)
		return result, nil
	}

	profile, err := uc.matchProfile(ctx, swipedID)
	if err != nil {
		uc.log.Error("match profile lookup failed", "err", err)
		return result, nil
	}

	result.Matched = true
	result.MatchID = &match.ID
	result.MatchProfile = profile

	uc.notifyMatch(ctx, match)
	if uc.geminiClient != nil {
		go uc.enrichMatch(context.WithoutCancel(ctx), match)
	}

	return result, nil
}

// resolveMatch creates the normalized-pair match. The unique constraint on
// (user1_id, user2_id) makes concurrent A->B / B->A likes collapse to one
// row: the insert loser fetches the winner's row.
func (uc *SwipeUseCase) resolveMatch(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	existing, err := uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, err
	}

	match := &domain.Match{
		User1ID:  user1ID,
		User2ID:  user2ID,
		IsActive: true,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, domain.ErrMatchExists) {
			return uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
		}
		return nil, err
	}
	return match, nil
}

func (uc *SwipeUseCase) matchProfile(ctx context.Context, userID int) (*MatchProfile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MatchProfile{
		UserID:      user.ID,
		DisplayName: profile.DisplayName,
		Age:         user.Age(),
		Bio:         profile.Bio,
		City:        profile.City,
		Photos:      user.Photos,
	}, nil
}

func (uc *SwipeUseCase) notifyMatch(ctx context.Context, match *domain.Match) {
	if uc.notifier == nil {
		return
	}
	for _, userID := range []int{match.User1ID, match.User2ID} {
		other, _ := match.OtherUserID(userID)
		profile, err := uc.matchProfile(ctx, other)
		if err != nil {
			continue
		}
		uc.notifier.SendToUser(userID, "new_match", map[string]interface{}{
			"match_id": match.ID,
			"profile":  profile,
		})
	}
}

// enrichMatch asks Gemini for opening lines and stores them on the match.
// Failures only cost the suggestion.
func (uc *SwipeUseCase) enrichMatch(ctx context.Context, match *domain.Match) {
	p1, err := uc.profileRepo.GetByUserID(ctx, match.User1ID)
	if err != nil {
		return
	}
	p2, err := uc.profileRepo.GetByUserID(ctx, match.User2ID)
	if err != nil {
		return
	}

	icebreakers, err := uc.geminiClient.GenerateIcebreakers(ctx, p1.Interests, p2.Interests)
	if err != nil {
		uc.log.Debug("icebreaker generation failed", "match_id", match.ID, "err", err)
		return
	}
	if err := uc.matchRepo.UpdateIcebreakers(ctx, match.ID, icebreakers); err != nil {
		uc.log.Warn("failed to store icebreakers", "match_id", match.ID, "err", err)
	}
}

// Rewind deletes the caller's most recent swipe and returns it. An empty
// ledger yields a nil swipe, not an error.
func (uc *SwipeUseCase) Rewind(ctx context.Context, swiperID int) (*domain.Swipe, error) {
	latest, err := uc.swipeRepo.GetLatestBySwiper(ctx, swiperID)
	if err != nil {
		if errors.Is(err, domain.ErrSwipeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := uc.swipeRepo.Delete(ctx, latest.ID); err != nil {
		return nil, err
	}
	return latest, nil
}

// LikeReceived pairs a like with the liker's display profile
type LikeReceived struct {
	SwipeID     int           `json:"swipe_id"`
	IsSuperLike bool          `json:"is_super_like"`
	Profile     *MatchProfile `json:"profile"`
	CreatedAt   string        `json:"created_at"`
}

// GetLikesReceived lists users whose current decision toward userID is a like.
func (uc *SwipeUseCase) GetLikesReceived(ctx context.Context, userID int, limit, offset int) ([]*LikeReceived, error) {
	likes, err := uc.swipeRepo.ListLikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes received: %w", err)
	}

	received := make([]*LikeReceived, 0, len(likes))
	for _, like := range likes {
		profile, err := uc.matchProfile(ctx, like.SwiperID)
		if err != nil {
			continue
		}
		received = append(received, &LikeReceived{
			SwipeID:     like.ID,
			IsSuperLike: like.IsSuperLike,
			Profile:     profile,
			CreatedAt:   like.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return received, nil
}
