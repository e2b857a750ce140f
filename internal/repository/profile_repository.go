package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdatePhotos(ctx context.Context, userID int, photos []string) error
}
