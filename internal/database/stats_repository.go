package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordich/pkg/models"
)

// StatsRepository handles database operations for aggregate learner stats
type StatsRepository struct{}

// NewStatsRepository creates a new repository instance
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// GetOrCreate returns the stats row for a user, creating an empty one on
// first contact.
func (r *StatsRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserStats, error) {
	var stats models.UserStats
	err := DB.GetContext(ctx, &stats,
		DB.Rebind("SELECT * FROM user_stats WHERE user_id = ?"), userID)
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get stats for user %d: %v", userID, err)
	}

	_, err = DB.ExecContext(ctx,
		DB.Rebind("INSERT INTO user_stats (user_id) VALUES (?)"), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats for user %d: %v", userID, err)
	}
	err = DB.GetContext(ctx, &stats,
		DB.Rebind("SELECT * FROM user_stats WHERE user_id = ?"), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload stats for user %d: %v", userID, err)
	}
	return &stats, nil
}

// saveStatsTx writes the counters inside a transaction.
func saveStatsTx(ctx context.Context, tx *sqlx.Tx, stats *models.UserStats) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE user_stats SET
			total_reviews = ?,
			correct_reviews = ?,
			words_mastered = ?,
			current_streak = ?,
			longest_streak = ?,
			week_activity = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`), stats.TotalReviews, stats.CorrectReviews, stats.WordsMastered,
		stats.CurrentStreak, stats.LongestStreak, stats.WeekActivity, stats.UserID)
	if err != nil {
		return fmt.Errorf("failed to save stats for user %d: %v", stats.UserID, err)
	}
	return nil
}
