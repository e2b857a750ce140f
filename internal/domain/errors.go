package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid token")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileExists         = errors.New("profile already exists")
	ErrCannotSwipeSelf       = errors.New("cannot swipe yourself")
	ErrSwipeNotFound         = errors.New("swipe not found")
	ErrDailyLikeLimit        = errors.New("daily like limit reached")
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchExists           = errors.New("match already exists")
	ErrMessageNotFound       = errors.New("message not found")
	ErrNotMatchParticipant   = errors.New("user is not a participant of this match")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrCheckInNotFound       = errors.New("no active check-in")
)
