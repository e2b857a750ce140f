package domain

import "time"

// Subscription tiers mirrored onto the user row.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Orientation values accepted at registration and onboarding.
const (
	OrientationStraight = "straight"
	OrientationGay      = "gay"
	OrientationBisexual = "bisexual"
)

type User struct {
	ID                   int        `json:"id" db:"id"`
	Email                string     `json:"email" db:"email"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	OAuthProvider        *string    `json:"oauth_provider,omitempty" db:"oauth_provider"`
	Name                 string     `json:"name" db:"name"`
	BirthDate            time.Time  `json:"birth_date" db:"birth_date"`
	Gender               string     `json:"gender" db:"gender"`
	Orientation          *string    `json:"orientation" db:"orientation"`
	Bio                  *string    `json:"bio" db:"bio"`
	Interests            []string   `json:"interests" db:"interests"`
	Photos               []string   `json:"photos" db:"photos"`
	Tier                 string     `json:"tier" db:"tier"`
	IsOnboardingComplete bool       `json:"is_onboarding_complete" db:"is_onboarding_complete"`
	LastOnlineAt         *time.Time `json:"last_online_at" db:"last_online_at"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// Age is derived from the birth date at read time, never stored.
func (u *User) Age() int {
	now := time.Now()
	age := now.Year() - u.BirthDate.Year()
	if now.YearDay() < u.BirthDate.YearDay() {
		age--
	}
	return age
}

func (u *User) IsPremium() bool {
	return u.Tier == TierPremium
}

// WantsGender reports whether the user's orientation includes the given
// gender. A missing or bisexual orientation filters nothing.
func (u *User) WantsGender(gender string) bool {
	if u.Orientation == nil {
		return true
	}
	switch *u.Orientation {
	case OrientationStraight:
		return gender != u.Gender
	case OrientationGay:
		return gender == u.Gender
	default:
		return true
	}
}
