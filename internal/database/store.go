package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordich/internal/lesson"
	"github.com/example/wordich/pkg/models"
)

// Store adapts the repositories to the lesson core's persistence contract.
type Store struct {
	users   *UserRepository
	words   *WordRepository
	mastery *MasteryRepository
	stats   *StatsRepository
}

// NewStore creates the store over the global connection.
func NewStore() *Store {
	return &Store{
		users:   NewUserRepository(),
		words:   NewWordRepository(),
		mastery: NewMasteryRepository(),
		stats:   NewStatsRepository(),
	}
}

var _ lesson.Store = (*Store)(nil)

// GetUser implements lesson.Store.
func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.Get(ctx, userID)
}

// DueRecords implements lesson.Store.
func (s *Store) DueRecords(ctx context.Context, userID int64, now time.Time, limit int) ([]models.MasteryRecord, error) {
	return s.mastery.DueForUser(ctx, userID, now, limit)
}

// WordsByIDs implements lesson.Store.
func (s *Store) WordsByIDs(ctx context.Context, ids []int64) ([]models.Word, error) {
	return s.words.GetByIDs(ctx, ids)
}

// NewWords implements lesson.Store.
func (s *Store) NewWords(ctx context.Context, userID int64, level string, limit int) ([]models.Word, error) {
	return s.words.NewForUser(ctx, userID, level, limit)
}

// GetRecord implements lesson.Store.
func (s *Store) GetRecord(ctx context.Context, userID, wordID int64) (*models.MasteryRecord, error) {
	return s.mastery.GetByUserAndWord(ctx, userID, wordID)
}

// CreateRecord implements lesson.Store.
func (s *Store) CreateRecord(ctx context.Context, rec *models.MasteryRecord) error {
	return s.mastery.Create(ctx, rec)
}

// GetOrCreateStats implements lesson.Store.
func (s *Store) GetOrCreateStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	return s.stats.GetOrCreate(ctx, userID)
}

// CommitStep writes the non-nil parts of a lesson step in one transaction, so
// mastery state and stats cannot drift apart on partial failure.
func (s *Store) CommitStep(ctx context.Context, step lesson.StepCommit) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin step transaction: %v", err)
	}
	defer tx.Rollback()

	if step.Record != nil {
		if err := upsertRecordTx(ctx, tx, step.Record); err != nil {
			return err
		}
	}
	if step.Stats != nil {
		if err := saveStatsTx(ctx, tx, step.Stats); err != nil {
			return err
		}
	}
	if step.User != nil {
		if err := updateUserTx(ctx, tx, step.User); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit step: %v", err)
	}
	return nil
}

// DueTodayCount implements lesson.Store.
func (s *Store) DueTodayCount(ctx context.Context, userID int64, before time.Time) (int, error) {
	return s.mastery.DueCount(ctx, userID, before)
}

// LevelCounts implements lesson.Store.
func (s *Store) LevelCounts(ctx context.Context, userID int64) (map[string]lesson.LevelCount, error) {
	rows, err := s.mastery.LevelCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]lesson.LevelCount, len(rows))
	for level, row := range rows {
		out[level] = lesson.LevelCount{Total: row.Total, Learned: row.Learned}
	}
	return out, nil
}

// updateUserTx writes profile fields inside a transaction.
func updateUserTx(ctx context.Context, tx *sqlx.Tx, user *models.User) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE users SET level = ?, daily_words = ?, streak = ?, last_active = ?
		WHERE id = ?
	`), user.Level, user.DailyWords, user.Streak, user.LastActive, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %v", user.ID, err)
	}
	return nil
}
