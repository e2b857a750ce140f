package match

import (
	"context"
	"testing"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	uc       *MatchUseCase
	matches  *repositorytest.MatchRepo
	profiles *repositorytest.ProfileRepo
	users    *repositorytest.UserRepo
	messages *repositorytest.MessageRepo
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		matches:  repositorytest.NewMatchRepo(),
		profiles: repositorytest.NewProfileRepo(),
		users:    repositorytest.NewUserRepo(),
		messages: repositorytest.NewMessageRepo(),
	}
	f.uc = NewMatchUseCase(f.matches, f.profiles, f.users, f.messages)
	return f
}

func (f *matchFixture) seedUser(name string, withProfile bool) *domain.User {
	user := f.users.Seed(&domain.User{
		Name:      name,
		BirthDate: time.Now().AddDate(-28, 0, 0),
	})
	if withProfile {
		f.profiles.Seed(&domain.Profile{UserID: user.ID, DisplayName: name + "!"})
	}
	return user
}

func TestListMatches(t *testing.T) {
	f := newMatchFixture()
	alice := f.seedUser("alice", true)
	bob := f.seedUser("bob", true)
	carol := f.seedUser("carol", true)

	withBob := f.matches.Seed(&domain.Match{User1ID: alice.ID, User2ID: bob.ID, IsActive: true})
	f.matches.Seed(&domain.Match{User1ID: alice.ID, User2ID: carol.ID, IsActive: true})
	// Inactive matches stay hidden.
	f.matches.Seed(&domain.Match{User1ID: bob.ID, User2ID: carol.ID, IsActive: false})

	require.NoError(t, f.messages.Create(context.Background(), &domain.Message{
		MatchID: withBob.ID, SenderID: bob.ID, Content: "hello",
	}))

	items, err := f.uc.ListMatches(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "bob!", items[0].Profile.DisplayName)
	require.NotNil(t, items[0].LastMessage)
	assert.Equal(t, "hello", items[0].LastMessage.Content)

	assert.Equal(t, "carol!", items[1].Profile.DisplayName)
	assert.Nil(t, items[1].LastMessage)
}

func TestListMatches_CounterpartWithoutProfile(t *testing.T) {
	f := newMatchFixture()
	alice := f.seedUser("alice", true)
	bob := f.seedUser("bob", false)

	f.matches.Seed(&domain.Match{User1ID: alice.ID, User2ID: bob.ID, IsActive: true})

	items, err := f.uc.ListMatches(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	// Falls back to the user row when onboarding is incomplete.
	assert.Equal(t, "bob", items[0].Profile.DisplayName)
}

func TestUnmatch(t *testing.T) {
	f := newMatchFixture()
	alice := f.seedUser("alice", true)
	bob := f.seedUser("bob", true)
	match := f.matches.Seed(&domain.Match{User1ID: alice.ID, User2ID: bob.ID, IsActive: true})

	require.NoError(t, f.uc.Unmatch(context.Background(), alice.ID, match.ID))

	stored, err := f.matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	items, err := f.uc.ListMatches(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUnmatch_NonParticipant(t *testing.T) {
	f := newMatchFixture()
	alice := f.seedUser("alice", true)
	bob := f.seedUser("bob", true)
	intruder := f.seedUser("mallory", true)
	match := f.matches.Seed(&domain.Match{User1ID: alice.ID, User2ID: bob.ID, IsActive: true})

	err := f.uc.Unmatch(context.Background(), intruder.ID, match.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	stored, err := f.matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}
