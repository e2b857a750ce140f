package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type MatchRepository interface {
	// Create inserts a normalized-pair match. A unique-constraint conflict
	// is reported as domain.ErrMatchExists so callers can treat the race
	// loser as "already matched".
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, id int, isActive bool) error
	UpdateIcebreakers(ctx context.Context, matchID int, icebreakers []string) error
}
