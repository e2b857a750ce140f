// Package repositorytest provides in-memory repository implementations for
// usecase tests. They honor the same sentinel-error contracts as the
// postgres implementations, including the unique pair constraint on matches.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type UserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{nextID: 1, users: make(map[int]*domain.User)}
}

// Seed inserts a user directly, assigning an id if missing.
func (r *UserRepo) Seed(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	if user.Tier == "" {
		user.Tier = domain.TierFree
	}
	r.users[user.ID] = user
	return user
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepo) UpdateTier(ctx context.Context, userID int, tier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Tier = tier
	return nil
}

func (r *UserRepo) ListCandidates(ctx context.Context, userID int, excludeIDs []int, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := make(map[int]struct{}, len(excludeIDs)+1)
	excluded[userID] = struct{}{}
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*domain.User
	for id := 1; id < r.nextID && len(out) < limit; id++ {
		user, ok := r.users[id]
		if !ok || !user.IsOnboardingComplete {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

type ProfileRepo struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*domain.Profile // keyed by user id
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{nextID: 1, profiles: make(map[int]*domain.Profile)}
}

func (r *ProfileRepo) Seed(profile *domain.Profile) *domain.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == 0 {
		profile.ID = r.nextID
		r.nextID++
	}
	r.profiles[profile.UserID] = profile
	return profile
}

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return domain.ErrProfileExists
	}
	profile.ID = r.nextID
	r.nextID++
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	profile.UpdatedAt = time.Now()
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *ProfileRepo) UpdatePhotos(ctx context.Context, userID int, photos []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.Photos = photos
	return nil
}

type SwipeRepo struct {
	mu     sync.Mutex
	nextID int
	swipes []*domain.Swipe
}

func NewSwipeRepo() *SwipeRepo {
	return &SwipeRepo{nextID: 1}
}

func (r *SwipeRepo) Create(ctx context.Context, swipe *domain.Swipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	swipe.ID = r.nextID
	r.nextID++
	swipe.CreatedAt = time.Now()
	copied := *swipe
	r.swipes = append(r.swipes, &copied)
	return nil
}

func (r *SwipeRepo) GetLatestBetween(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.swipes) - 1; i >= 0; i-- {
		s := r.swipes[i]
		if s.SwiperID == swiperID && s.SwipedID == swipedID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domain.ErrSwipeNotFound
}

func (r *SwipeRepo) GetLatestBySwiper(ctx context.Context, swiperID int) (*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.swipes) - 1; i >= 0; i-- {
		if r.swipes[i].SwiperID == swiperID {
			copied := *r.swipes[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrSwipeNotFound
}

func (r *SwipeRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.swipes {
		if s.ID == id {
			r.swipes = append(r.swipes[:i], r.swipes[i+1:]...)
			return nil
		}
	}
	return domain.ErrSwipeNotFound
}

func (r *SwipeRepo) ListSwipedIDs(ctx context.Context, swiperID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int]struct{})
	var ids []int
	for _, s := range r.swipes {
		if s.SwiperID != swiperID {
			continue
		}
		if _, ok := seen[s.SwipedID]; ok {
			continue
		}
		seen[s.SwipedID] = struct{}{}
		ids = append(ids, s.SwipedID)
	}
	return ids, nil
}

func (r *SwipeRepo) ListLikesReceived(ctx context.Context, swipedID int, limit, offset int) ([]*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Latest decision per swiper only.
	latest := make(map[int]*domain.Swipe)
	for _, s := range r.swipes {
		if s.SwipedID == swipedID {
			latest[s.SwiperID] = s
		}
	}
	var likes []*domain.Swipe
	for id := 1; id < r.nextID; id++ {
		for _, s := range latest {
			if s.ID == id && s.IsLike {
				copied := *s
				likes = append(likes, &copied)
			}
		}
	}
	if offset >= len(likes) {
		return nil, nil
	}
	likes = likes[offset:]
	if limit < len(likes) {
		likes = likes[:limit]
	}
	return likes, nil
}

// Count reports the total number of stored swipe rows.
func (r *SwipeRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.swipes)
}

type MatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches map[int]*domain.Match
}

func NewMatchRepo() *MatchRepo {
	return &MatchRepo{nextID: 1, matches: make(map[int]*domain.Match)}
}

func (r *MatchRepo) Seed(match *domain.Match) *domain.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	if match.ID == 0 {
		match.ID = r.nextID
		r.nextID++
	}
	match.User1ID, match.User2ID = domain.NormalizePair(match.User1ID, match.User2ID)
	r.matches[match.ID] = match
	return match
}

func (r *MatchRepo) Create(ctx context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.NormalizePair(match.User1ID, match.User2ID)
	for _, m := range r.matches {
		if m.User1ID == u1 && m.User2ID == u2 {
			return domain.ErrMatchExists
		}
	}
	match.ID = r.nextID
	r.nextID++
	match.User1ID, match.User2ID = u1, u2
	match.CreatedAt = time.Now()
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *MatchRepo) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.NormalizePair(user1ID, user2ID)
	for _, m := range r.matches {
		if m.User1ID == u1 && m.User2ID == u2 {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *MatchRepo) GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for id := 1; id < r.nextID; id++ {
		m, ok := r.matches[id]
		if !ok || !m.IsActive || !m.HasUser(userID) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *MatchRepo) UpdateStatus(ctx context.Context, id int, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	match.IsActive = isActive
	return nil
}

func (r *MatchRepo) UpdateIcebreakers(ctx context.Context, matchID int, icebreakers []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	match.Icebreakers = icebreakers
	return nil
}

// Count reports how many match rows exist, raced inserts included.
func (r *MatchRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}

type MessageRepo struct {
	mu       sync.Mutex
	nextID   int
	messages []*domain.Message
	// CreateErr, when set, fails the next Create call.
	CreateErr error
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{nextID: 1}
}

func (r *MessageRepo) Create(ctx context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	message.ID = r.nextID
	r.nextID++
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *MessageRepo) ListByMatch(ctx context.Context, matchID int) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Message
	for _, m := range r.messages {
		if m.MatchID == matchID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *MessageRepo) GetLastByMatch(ctx context.Context, matchID int) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].MatchID == matchID {
			copied := *r.messages[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *MessageRepo) MarkRead(ctx context.Context, matchID, readerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.MatchID == matchID && m.SenderID != readerID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *MessageRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type SubscriptionRepo struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*domain.Subscription // keyed by user id
}

func NewSubscriptionRepo() *SubscriptionRepo {
	return &SubscriptionRepo{nextID: 1, subs: make(map[int]*domain.Subscription)}
}

func (r *SubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.subs[sub.UserID]; ok {
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
	} else {
		sub.ID = r.nextID
		r.nextID++
		sub.CreatedAt = time.Now()
	}
	sub.UpdatedAt = time.Now()
	copied := *sub
	r.subs[sub.UserID] = &copied
	return nil
}

func (r *SubscriptionRepo) GetByUserID(ctx context.Context, userID int) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[userID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	copied := *sub
	return &copied, nil
}

type CheckInRepo struct {
	mu             sync.Mutex
	nextID         int
	establishments map[int]*domain.Establishment
	checkIns       []*domain.CheckIn
}

func NewCheckInRepo() *CheckInRepo {
	return &CheckInRepo{nextID: 1, establishments: make(map[int]*domain.Establishment)}
}

func (r *CheckInRepo) SeedEstablishment(e *domain.Establishment) *domain.Establishment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == 0 {
		e.ID = len(r.establishments) + 1
	}
	r.establishments[e.ID] = e
	return e
}

func (r *CheckInRepo) ListEstablishments(ctx context.Context, category string) ([]*domain.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Establishment
	for id := 1; id <= len(r.establishments); id++ {
		e, ok := r.establishments[id]
		if !ok {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r *CheckInRepo) GetEstablishment(ctx context.Context, id int) (*domain.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.establishments[id]
	if !ok {
		return nil, domain.ErrEstablishmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *CheckInRepo) CreateCheckIn(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	checkIn.ID = r.nextID
	r.nextID++
	checkIn.IsActive = true
	checkIn.CreatedAt = time.Now()
	copied := *checkIn
	r.checkIns = append(r.checkIns, &copied)
	return nil
}

func (r *CheckInRepo) DeactivateForUser(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.checkIns {
		if c.UserID == userID {
			c.IsActive = false
		}
	}
	return nil
}

func (r *CheckInRepo) GetActiveByUser(ctx context.Context, userID int) (*domain.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.checkIns) - 1; i >= 0; i-- {
		c := r.checkIns[i]
		if c.UserID == userID && c.IsActive {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrCheckInNotFound
}

func (r *CheckInRepo) ListActiveByEstablishment(ctx context.Context, establishmentID int) ([]*domain.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CheckIn
	for _, c := range r.checkIns {
		if c.EstablishmentID == establishmentID && c.IsActive {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}
