package domain

import "time"

// Match joins an unordered pair of users after reciprocal likes. The pair
// is normalized (user1_id < user2_id) and backed by a unique constraint, so
// at most one row can exist per pair regardless of which like landed last.
type Match struct {
	ID          int       `json:"id" db:"id"`
	User1ID     int       `json:"user1_id" db:"user1_id"`
	User2ID     int       `json:"user2_id" db:"user2_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Icebreakers []string  `json:"icebreakers" db:"icebreakers"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// NormalizePair orders two user ids for the matches unique constraint.
func NormalizePair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
