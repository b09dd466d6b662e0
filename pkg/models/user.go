package models

import "time"

// User represents a learner interacting with the bot
type User struct {
	ID         int64     `json:"id" db:"id"` // Telegram user ID
	Username   string    `json:"username" db:"username"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Level      string    `json:"level" db:"level"`             // proficiency level A1..C1
	DailyWords int       `json:"daily_words" db:"daily_words"` // daily lesson quota
	Streak     int       `json:"streak" db:"streak"`           // consecutive active days
	LastActive time.Time `json:"last_active" db:"last_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
