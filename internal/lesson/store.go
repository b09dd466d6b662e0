package lesson

import (
	"context"
	"time"

	"github.com/example/wordich/pkg/models"
)

// Store is the persistence contract the lesson core consumes. The concrete
// implementation lives in internal/database; tests use in-memory fakes.
type Store interface {
	// GetUser returns the learner profile.
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	// DueRecords returns mastery records due at now, ordered by next_review
	// ascending then stage ascending, capped at limit.
	DueRecords(ctx context.Context, userID int64, now time.Time, limit int) ([]models.MasteryRecord, error)
	// WordsByIDs resolves catalog words; order of the result is unspecified.
	WordsByIDs(ctx context.Context, ids []int64) ([]models.Word, error)
	// NewWords returns catalog words the user has no mastery record for,
	// filtered to the given level or below, ordered by frequency descending.
	NewWords(ctx context.Context, userID int64, level string, limit int) ([]models.Word, error)
	// GetRecord returns the mastery record for a (user, word) pair, or
	// (nil, nil) when absent.
	GetRecord(ctx context.Context, userID, wordID int64) (*models.MasteryRecord, error)
	// CreateRecord inserts a fresh mastery record.
	CreateRecord(ctx context.Context, rec *models.MasteryRecord) error
	// GetOrCreateStats returns the stats row for a user, creating it on first
	// contact.
	GetOrCreateStats(ctx context.Context, userID int64) (*models.UserStats, error)
	// CommitStep persists the non-nil parts of a step atomically: either all
	// writes land or none do.
	CommitStep(ctx context.Context, step StepCommit) error
	// DueTodayCount counts records due before the given time.
	DueTodayCount(ctx context.Context, userID int64, before time.Time) (int, error)
	// LevelCounts returns per-level catalog totals and learned counts
	// (stage >= 3) for the user.
	LevelCounts(ctx context.Context, userID int64) (map[string]LevelCount, error)
}

// StepCommit bundles the entities mutated by one lesson step. Nil fields are
// skipped; the rest are written in a single transaction.
type StepCommit struct {
	Record *models.MasteryRecord
	Stats  *models.UserStats
	User   *models.User
}

// LevelCount is one row of the per-level progress breakdown.
type LevelCount struct {
	Total   int
	Learned int
}
