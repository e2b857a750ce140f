package swipe

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/emberlink/emberlink-backend/internal/cache"
	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedFrame struct {
	UserID    int
	FrameType string
}

type fakeNotifier struct {
	mu     sync.Mutex
	frames []recordedFrame
}

func (n *fakeNotifier) SendToUser(userID int, frameType string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frames = append(n.frames, recordedFrame{UserID: userID, FrameType: frameType})
}

func (n *fakeNotifier) framesFor(userID int) []recordedFrame {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedFrame
	for _, f := range n.frames {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out
}

type swipeFixture struct {
	uc        *SwipeUseCase
	users     *repositorytest.UserRepo
	profiles  *repositorytest.ProfileRepo
	swipes    *repositorytest.SwipeRepo
	matches   *repositorytest.MatchRepo
	notifier  *fakeNotifier
	redisServ *miniredis.Miniredis
}

func newSwipeFixture(t *testing.T, dailyLikes int) *swipeFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	f := &swipeFixture{
		users:     repositorytest.NewUserRepo(),
		profiles:  repositorytest.NewProfileRepo(),
		swipes:    repositorytest.NewSwipeRepo(),
		matches:   repositorytest.NewMatchRepo(),
		notifier:  &fakeNotifier{},
		redisServ: mr,
	}
	f.uc = NewSwipeUseCase(
		f.swipes, f.matches, f.profiles, f.users,
		redisCache, f.notifier, nil, dailyLikes,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func (f *swipeFixture) seedUser(t *testing.T, tier string) *domain.User {
	t.Helper()
	user := f.users.Seed(&domain.User{
		Email:                "",
		Name:                 "user",
		BirthDate:            time.Now().AddDate(-25, 0, 0),
		Gender:               "female",
		Tier:                 tier,
		IsOnboardingComplete: true,
	})
	f.profiles.Seed(&domain.Profile{
		UserID:      user.ID,
		DisplayName: "user",
		Interests:   []string{"hiking"},
	})
	return user
}

func TestCreateSwipe_LikeWithoutReciprocity(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	result, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID,
		Type:     domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.MatchID)
	assert.Equal(t, 0, f.matches.Count())
}

func TestCreateSwipe_ReciprocalLikesMatch(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)

	result, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	require.True(t, result.Matched)
	require.NotNil(t, result.MatchID)
	require.NotNil(t, result.MatchProfile)
	assert.Equal(t, alice.ID, result.MatchProfile.UserID)
	assert.Equal(t, 1, f.matches.Count())

	// Both sides get the push.
	assert.Len(t, f.notifier.framesFor(alice.ID), 1)
	assert.Len(t, f.notifier.framesFor(bob.ID), 1)
	assert.Equal(t, "new_match", f.notifier.framesFor(alice.ID)[0].FrameType)
}

func TestCreateSwipe_DislikeNeverMatches(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)

	result, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeDislike,
	})
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, f.matches.Count())
}

func TestCreateSwipe_SelfSwipeRejected(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
	assert.Equal(t, 0, f.swipes.Count())
}

func TestCreateSwipe_UnknownTarget(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: 999, Type: domain.SwipeTypeLike,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateSwipe_DailyLimitFreeTier(t *testing.T) {
	f := newSwipeFixture(t, 2)
	alice := f.seedUser(t, domain.TierFree)
	targets := []*domain.User{
		f.seedUser(t, domain.TierFree),
		f.seedUser(t, domain.TierFree),
		f.seedUser(t, domain.TierFree),
	}

	for i := 0; i < 2; i++ {
		_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
			SwipedID: targets[i].ID, Type: domain.SwipeTypeLike,
		})
		require.NoError(t, err)
	}

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: targets[2].ID, Type: domain.SwipeTypeLike,
	})
	assert.ErrorIs(t, err, domain.ErrDailyLikeLimit)
	// The rejected like must not land in the ledger.
	assert.Equal(t, 2, f.swipes.Count())

	// Dislikes stay free of the budget.
	_, err = f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: targets[2].ID, Type: domain.SwipeTypeDislike,
	})
	assert.NoError(t, err)
}

func TestCreateSwipe_PremiumUnlimited(t *testing.T) {
	f := newSwipeFixture(t, 1)
	alice := f.seedUser(t, domain.TierPremium)
	bob := f.seedUser(t, domain.TierFree)
	carol := f.seedUser(t, domain.TierFree)

	for _, target := range []int{bob.ID, carol.ID} {
		_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
			SwipedID: target, Type: domain.SwipeTypeLike,
		})
		require.NoError(t, err)
	}
}

func TestCreateSwipe_AppendOnlyReswipe(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	// Bob likes alice first so a reciprocal like can match later.
	_, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)

	// Alice dislikes, then changes her mind. Each decision appends a row.
	_, err = f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID, Type: domain.SwipeTypeDislike,
	})
	require.NoError(t, err)

	result, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, 3, f.swipes.Count())
}

func TestCreateSwipe_ConcurrentReciprocalCollapses(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
			SwipedID: bob.ID, Type: domain.SwipeTypeLike,
		})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
			SwipedID: alice.ID, Type: domain.SwipeTypeLike,
		})
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.Equal(t, 1, f.matches.Count())
}

func TestSuperLike(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)

	result, err := f.uc.SuperLike(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.Swipe.IsSuperLike)
	assert.True(t, result.Swipe.IsLike)

	// A reciprocal plain like still matches against a super-like.
	reply, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	assert.True(t, reply.Matched)
}

func TestRewind(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)
	carol := f.seedUser(t, domain.TierFree)

	_, err := f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: bob.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	_, err = f.uc.CreateSwipe(context.Background(), alice.ID, &SwipeRequest{
		SwipedID: carol.ID, Type: domain.SwipeTypeDislike,
	})
	require.NoError(t, err)

	undone, err := f.uc.Rewind(context.Background(), alice.ID)
	require.NoError(t, err)
	require.NotNil(t, undone)
	assert.Equal(t, carol.ID, undone.SwipedID)
	assert.Equal(t, 1, f.swipes.Count())

	undone, err = f.uc.Rewind(context.Background(), alice.ID)
	require.NoError(t, err)
	require.NotNil(t, undone)
	assert.Equal(t, bob.ID, undone.SwipedID)

	// Empty ledger is a no-op, not an error.
	undone, err = f.uc.Rewind(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Nil(t, undone)
}

func TestGetLikesReceived_LatestDecisionOnly(t *testing.T) {
	f := newSwipeFixture(t, 100)
	alice := f.seedUser(t, domain.TierFree)
	bob := f.seedUser(t, domain.TierFree)
	carol := f.seedUser(t, domain.TierFree)

	// Bob's current decision is a like.
	_, err := f.uc.CreateSwipe(context.Background(), bob.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)

	// Carol liked once but her latest decision is a dislike.
	_, err = f.uc.CreateSwipe(context.Background(), carol.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeLike,
	})
	require.NoError(t, err)
	_, err = f.uc.CreateSwipe(context.Background(), carol.ID, &SwipeRequest{
		SwipedID: alice.ID, Type: domain.SwipeTypeDislike,
	})
	require.NoError(t, err)

	received, err := f.uc.GetLikesReceived(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, bob.ID, received[0].Profile.UserID)
}
