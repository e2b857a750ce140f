package domain

import "time"

// Subscription statuses mirrored from the payment provider.
const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Subscription mirrors billing state owned by the payment provider. Rows
// are written by the sync endpoint, never by core logic, and the user's
// tier is derived from the mirrored status.
type Subscription struct {
	ID                     int       `json:"id" db:"id"`
	UserID                 int       `json:"user_id" db:"user_id"`
	ProviderSubscriptionID string    `json:"provider_subscription_id" db:"provider_subscription_id"`
	Tier                   string    `json:"tier" db:"tier"`
	Status                 string    `json:"status" db:"status"`
	CurrentPeriodEnd       time.Time `json:"current_period_end" db:"current_period_end"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionActive && s.CurrentPeriodEnd.After(time.Now())
}
