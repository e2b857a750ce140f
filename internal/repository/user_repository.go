package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateTier(ctx context.Context, userID int, tier string) error
	ListCandidates(ctx context.Context, userID int, excludeIDs []int, limit int) ([]*domain.User, error)
}
