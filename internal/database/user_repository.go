package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordich/pkg/models"
)

// UserRepository handles database operations for learner profiles
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Get returns a user by Telegram ID.
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, DB.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %v", id, err)
	}
	return &user, nil
}

// GetOrCreate returns the user, creating the profile on first contact with the
// caller's default level and daily quota.
func (r *UserRepository) GetOrCreate(ctx context.Context, id int64, username, firstName, lastName, level string, dailyWords int) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, DB.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user %d: %v", id, err)
	}

	user = models.User{
		ID:         id,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Level:      level,
		DailyWords: dailyWords,
		LastActive: time.Now().UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	_, err = DB.ExecContext(ctx, DB.Rebind(`
		INSERT INTO users (id, username, first_name, last_name, level, daily_words, streak, last_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), user.ID, user.Username, user.FirstName, user.LastName, user.Level,
		user.DailyWords, user.Streak, user.LastActive, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %v", id, err)
	}
	return &user, nil
}

// SetLevel changes the user's proficiency level.
func (r *UserRepository) SetLevel(ctx context.Context, id int64, level string) error {
	if models.LevelRank(level) < 0 {
		return fmt.Errorf("unknown level %q", level)
	}
	_, err := DB.ExecContext(ctx, DB.Rebind("UPDATE users SET level = ? WHERE id = ?"), level, id)
	return err
}

// SetDailyWords changes the user's daily lesson quota.
func (r *UserRepository) SetDailyWords(ctx context.Context, id int64, count int) error {
	if count < 0 {
		return fmt.Errorf("daily words must not be negative")
	}
	_, err := DB.ExecContext(ctx, DB.Rebind("UPDATE users SET daily_words = ? WHERE id = ?"), count, id)
	return err
}

// All returns every registered user. Used by the reminder scheduler.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := DB.SelectContext(ctx, &users, "SELECT * FROM users"); err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	return users, nil
}
