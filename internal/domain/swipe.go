package domain

import "time"

// Swipe type values accepted on the wire.
const (
	SwipeTypeLike    = "like"
	SwipeTypeDislike = "dislike"
)

// Swipe is a single directional decision in an append-only ledger. A new
// swipe never overwrites an earlier row; the latest row per
// (swiper_id, swiped_id) is the current decision. Rewind deletes the
// actor's most recent row.
type Swipe struct {
	ID          int       `json:"id" db:"id"`
	SwiperID    int       `json:"swiper_id" db:"swiper_id"`
	SwipedID    int       `json:"swiped_id" db:"swiped_id"`
	IsLike      bool      `json:"is_like" db:"is_like"`
	IsSuperLike bool      `json:"is_super_like" db:"is_super_like"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
