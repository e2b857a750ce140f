package domain

import "time"

// Profile is the display-facing projection of a user. It is created lazily
// on the first onboarding save. Photos are duplicated between users.photos
// and profiles.photos; users.photos is the source of truth and the copy is
// reconciled on every read.
type Profile struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Bio         *string   `json:"bio" db:"bio"`
	City        *string   `json:"city" db:"city"`
	Interests   []string  `json:"interests" db:"interests"`
	Photos      []string  `json:"photos" db:"photos"`
	LocationLat *float64  `json:"location_lat" db:"location_lat"`
	LocationLon *float64  `json:"location_lon" db:"location_lon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
