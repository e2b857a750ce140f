package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			user_id, provider_subscription_id, tier, status, current_period_end
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET provider_subscription_id = EXCLUDED.provider_subscription_id,
		    tier = EXCLUDED.tier,
		    status = EXCLUDED.status,
		    current_period_end = EXCLUDED.current_period_end,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		sub.UserID, sub.ProviderSubscriptionID, sub.Tier, sub.Status,
		sub.CurrentPeriodEnd,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID int) (*domain.Subscription, error) {
	var sub domain.Subscription
	query := `
		SELECT id, user_id, provider_subscription_id, tier, status,
		       current_period_end, created_at, updated_at
		FROM subscriptions WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &sub, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}
