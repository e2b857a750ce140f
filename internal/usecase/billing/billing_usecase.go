package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

// BillingUseCase mirrors provider-owned subscription state. It never talks
// to the payment provider itself; state arrives through SyncSubscription.
type BillingUseCase struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewBillingUseCase(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) *BillingUseCase {
	return &BillingUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// SyncRequest carries provider-sourced subscription state
type SyncRequest struct {
	ProviderSubscriptionID string    `json:"provider_subscription_id" binding:"required"`
	Tier                   string    `json:"tier" binding:"required,oneof=free premium"`
	Status                 string    `json:"status" binding:"required,oneof=active past_due canceled"`
	CurrentPeriodEnd       time.Time `json:"current_period_end" binding:"required"`
}

// SyncSubscription upserts the mirrored row and derives the user's tier:
// premium only while the mirrored subscription is active.
func (uc *BillingUseCase) SyncSubscription(ctx context.Context, userID int, req *SyncRequest) (*domain.Subscription, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		UserID:                 userID,
		ProviderSubscriptionID: req.ProviderSubscriptionID,
		Tier:                   req.Tier,
		Status:                 req.Status,
		CurrentPeriodEnd:       req.CurrentPeriodEnd,
	}
	if err := uc.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	tier := domain.TierFree
	if sub.IsActive() && sub.Tier == domain.TierPremium {
		tier = domain.TierPremium
	}
	if err := uc.userRepo.UpdateTier(ctx, userID, tier); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubscription returns the caller's mirrored subscription row.
func (uc *BillingUseCase) GetSubscription(ctx context.Context, userID int) (*domain.Subscription, error) {
	return uc.subscriptionRepo.GetByUserID(ctx, userID)
}
