package billing

import (
	"context"
	"testing"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingFixture() (*BillingUseCase, *repositorytest.SubscriptionRepo, *repositorytest.UserRepo) {
	subs := repositorytest.NewSubscriptionRepo()
	users := repositorytest.NewUserRepo()
	return NewBillingUseCase(subs, users), subs, users
}

func TestSyncSubscription_ActivePremium(t *testing.T) {
	uc, _, users := newBillingFixture()
	user := users.Seed(&domain.User{Name: "alice", Tier: domain.TierFree})

	sub, err := uc.SyncSubscription(context.Background(), user.ID, &SyncRequest{
		ProviderSubscriptionID: "sub_123",
		Tier:                   domain.TierPremium,
		Status:                 domain.SubscriptionActive,
		CurrentPeriodEnd:       time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, sub.IsActive())

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, stored.Tier)
}

func TestSyncSubscription_CanceledDowngrades(t *testing.T) {
	uc, _, users := newBillingFixture()
	user := users.Seed(&domain.User{Name: "alice", Tier: domain.TierPremium})

	_, err := uc.SyncSubscription(context.Background(), user.ID, &SyncRequest{
		ProviderSubscriptionID: "sub_123",
		Tier:                   domain.TierPremium,
		Status:                 domain.SubscriptionCanceled,
		CurrentPeriodEnd:       time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, stored.Tier)
}

func TestSyncSubscription_ExpiredPeriodDowngrades(t *testing.T) {
	uc, _, users := newBillingFixture()
	user := users.Seed(&domain.User{Name: "alice", Tier: domain.TierPremium})

	_, err := uc.SyncSubscription(context.Background(), user.ID, &SyncRequest{
		ProviderSubscriptionID: "sub_123",
		Tier:                   domain.TierPremium,
		Status:                 domain.SubscriptionActive,
		CurrentPeriodEnd:       time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, stored.Tier)
}

func TestSyncSubscription_UpsertKeepsOneRow(t *testing.T) {
	uc, subs, users := newBillingFixture()
	user := users.Seed(&domain.User{Name: "alice"})

	for _, status := range []string{domain.SubscriptionActive, domain.SubscriptionPastDue} {
		_, err := uc.SyncSubscription(context.Background(), user.ID, &SyncRequest{
			ProviderSubscriptionID: "sub_123",
			Tier:                   domain.TierPremium,
			Status:                 status,
			CurrentPeriodEnd:       time.Now().Add(24 * time.Hour),
		})
		require.NoError(t, err)
	}

	stored, err := subs.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPastDue, stored.Status)
}

func TestGetSubscription_Missing(t *testing.T) {
	uc, _, users := newBillingFixture()
	user := users.Seed(&domain.User{Name: "alice"})

	_, err := uc.GetSubscription(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}
