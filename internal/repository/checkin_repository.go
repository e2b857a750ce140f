package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type CheckInRepository interface {
	ListEstablishments(ctx context.Context, category string) ([]*domain.Establishment, error)
	GetEstablishment(ctx context.Context, id int) (*domain.Establishment, error)
	CreateCheckIn(ctx context.Context, checkIn *domain.CheckIn) error
	// DeactivateForUser clears the user's active check-in, if any.
	DeactivateForUser(ctx context.Context, userID int) error
	GetActiveByUser(ctx context.Context, userID int) (*domain.CheckIn, error)
	ListActiveByEstablishment(ctx context.Context, establishmentID int) ([]*domain.CheckIn, error)
}
