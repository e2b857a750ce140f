package profile

import (
	"context"
	"testing"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (*ProfileUseCase, *repositorytest.ProfileRepo, *repositorytest.UserRepo) {
	profiles := repositorytest.NewProfileRepo()
	users := repositorytest.NewUserRepo()
	return NewProfileUseCase(profiles, users), profiles, users
}

func seedUser(users *repositorytest.UserRepo) *domain.User {
	return users.Seed(&domain.User{
		Name:      "alice",
		BirthDate: time.Now().AddDate(-27, 0, 0),
	})
}

func TestCompleteOnboarding(t *testing.T) {
	uc, _, users := newProfileFixture()
	user := seedUser(users)

	resp, err := uc.CompleteOnboarding(context.Background(), user.ID, &CreateProfileRequest{
		DisplayName: "Alice",
		Interests:   []string{"climbing"},
		Photos:      []string{"a.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.DisplayName)
	assert.Equal(t, 27, resp.Age)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnboardingComplete)
	assert.Equal(t, []string{"a.jpg"}, stored.Photos)
}

func TestCompleteOnboarding_Twice(t *testing.T) {
	uc, _, users := newProfileFixture()
	user := seedUser(users)

	_, err := uc.CompleteOnboarding(context.Background(), user.ID, &CreateProfileRequest{DisplayName: "Alice"})
	require.NoError(t, err)

	_, err = uc.CompleteOnboarding(context.Background(), user.ID, &CreateProfileRequest{DisplayName: "Alice again"})
	assert.ErrorIs(t, err, domain.ErrProfileExists)
}

func TestGetProfile_ReconcilesPhotos(t *testing.T) {
	uc, profiles, users := newProfileFixture()
	user := users.Seed(&domain.User{
		Name:      "alice",
		BirthDate: time.Now().AddDate(-27, 0, 0),
		Photos:    []string{"new.jpg"},
	})
	// The duplicated copy went stale.
	profiles.Seed(&domain.Profile{
		UserID:      user.ID,
		DisplayName: "Alice",
		Photos:      []string{"old.jpg"},
	})

	resp, err := uc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.jpg"}, resp.Photos)

	stored, err := profiles.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.jpg"}, stored.Photos)
}

func TestGetProfile_Missing(t *testing.T) {
	uc, _, users := newProfileFixture()
	user := seedUser(users)

	_, err := uc.GetProfile(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	uc, _, users := newProfileFixture()
	user := seedUser(users)

	_, err := uc.CompleteOnboarding(context.Background(), user.ID, &CreateProfileRequest{
		DisplayName: "Alice",
		Photos:      []string{"a.jpg"},
	})
	require.NoError(t, err)

	bio := "hey"
	resp, err := uc.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{
		Bio:    &bio,
		Photos: []string{"b.jpg", "c.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.DisplayName) // untouched fields survive
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "hey", *resp.Bio)

	// Photo edits reach the source-of-truth user row.
	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, stored.Photos)
}
