package domain

import "time"

type Establishment struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Address   string    `json:"address" db:"address"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CheckIn tags a user at an establishment. At most one check-in per user is
// active; older rows are deactivated when a new one is created.
type CheckIn struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id"`
	EstablishmentID int       `json:"establishment_id" db:"establishment_id"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
