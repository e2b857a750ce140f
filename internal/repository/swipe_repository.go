package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

// SwipeRepository is the append-only swipe ledger. Create never overwrites
// an earlier row; "current decision" queries always take the latest row.
type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	// GetLatestBetween returns the most recent swipe swiper -> swiped,
	// or domain.ErrSwipeNotFound when the actor never swiped the target.
	GetLatestBetween(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error)
	// GetLatestBySwiper returns the actor's most recent swipe (rewind target).
	GetLatestBySwiper(ctx context.Context, swiperID int) (*domain.Swipe, error)
	Delete(ctx context.Context, id int) error
	// ListSwipedIDs returns every target the actor has ever swiped on,
	// used to exclude them from the discovery feed.
	ListSwipedIDs(ctx context.Context, swiperID int) ([]int, error)
	ListLikesReceived(ctx context.Context, swipedID int, limit, offset int) ([]*domain.Swipe, error)
}
