package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeekActivity counts answered quiz steps per weekday (Monday = index 0).
// Stored as a JSON array in a TEXT column.
type WeekActivity [7]int

// Value implements driver.Valuer.
func (w WeekActivity) Value() (driver.Value, error) {
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (w *WeekActivity) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WeekActivity{}
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("cannot scan %T into WeekActivity", src)
	}
}

// Bucket returns the WeekActivity index for the given time (Monday = 0).
func (w WeekActivity) Bucket(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// UserStats holds aggregate learning counters for a user. Updated in the same
// transaction as the MasteryRecord it reflects.
type UserStats struct {
	ID             int64        `json:"id" db:"id"`
	UserID         int64        `json:"user_id" db:"user_id"`
	TotalReviews   int          `json:"total_reviews" db:"total_reviews"`
	CorrectReviews int          `json:"correct_reviews" db:"correct_reviews"`
	WordsMastered  int          `json:"words_mastered" db:"words_mastered"`
	CurrentStreak  int          `json:"current_streak" db:"current_streak"`
	LongestStreak  int          `json:"longest_streak" db:"longest_streak"`
	WeekActivity   WeekActivity `json:"week_activity" db:"week_activity"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Accuracy returns the share of correct reviews as a percentage.
func (s *UserStats) Accuracy() float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.CorrectReviews) / float64(s.TotalReviews) * 100
}
