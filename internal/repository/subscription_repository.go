package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type SubscriptionRepository interface {
	// Upsert writes provider-sourced state keyed by user_id.
	Upsert(ctx context.Context, sub *domain.Subscription) error
	GetByUserID(ctx context.Context, userID int) (*domain.Subscription, error)
}
