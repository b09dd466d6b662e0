package models

import "time"

// MaxStage is the highest memorization stage. A record that reaches it is
// considered mastered.
const MaxStage = 5

// MasteryRecord tracks a user's memorization state for a single word.
// A record is created lazily the first time a word is selected for the user
// and is updated exactly once per answered quiz.
type MasteryRecord struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	WordID       int64      `json:"word_id" db:"word_id"`
	Stage        int        `json:"stage" db:"stage"` // 0..MaxStage
	NextReview   time.Time  `json:"next_review" db:"next_review"`
	CorrectCount int        `json:"correct_count" db:"correct_count"`
	WrongCount   int        `json:"wrong_count" db:"wrong_count"`
	ReviewCount  int        `json:"review_count" db:"review_count"`
	LastReviewed *time.Time `json:"last_reviewed" db:"last_reviewed"`
	MasteredAt   *time.Time `json:"mastered_at" db:"mastered_at"` // set once, never cleared
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// Due reports whether the record is due for review at the given time.
func (r *MasteryRecord) Due(now time.Time) bool {
	return !r.NextReview.After(now)
}

// Mastered reports whether the word has ever reached the maximum stage.
func (r *MasteryRecord) Mastered() bool {
	return r.MasteredAt != nil
}
