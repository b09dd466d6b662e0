package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordich/pkg/models"
)

// MasteryRepository handles database operations for per-word learning state
type MasteryRepository struct{}

// NewMasteryRepository creates a new repository instance
func NewMasteryRepository() *MasteryRepository {
	return &MasteryRepository{}
}

// GetByUserAndWord returns the record for a (user, word) pair, or (nil, nil)
// when the word has never been presented to the user.
func (r *MasteryRepository) GetByUserAndWord(ctx context.Context, userID, wordID int64) (*models.MasteryRecord, error) {
	var rec models.MasteryRecord
	err := DB.GetContext(ctx, &rec,
		DB.Rebind("SELECT * FROM mastery_records WHERE user_id = ? AND word_id = ?"),
		userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery record: %v", err)
	}
	return &rec, nil
}

// DueForUser returns records due at the given time, most overdue and least
// mastered first.
func (r *MasteryRepository) DueForUser(ctx context.Context, userID int64, now time.Time, limit int) ([]models.MasteryRecord, error) {
	var recs []models.MasteryRecord
	err := DB.SelectContext(ctx, &recs, DB.Rebind(`
		SELECT * FROM mastery_records
		WHERE user_id = ? AND next_review <= ?
		ORDER BY next_review ASC, stage ASC
		LIMIT ?
	`), userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due records: %v", err)
	}
	return recs, nil
}

// Create inserts a fresh record.
func (r *MasteryRepository) Create(ctx context.Context, rec *models.MasteryRecord) error {
	res, err := DB.ExecContext(ctx, DB.Rebind(`
		INSERT INTO mastery_records (user_id, word_id, stage, next_review, correct_count, wrong_count, review_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), rec.UserID, rec.WordID, rec.Stage, rec.NextReview,
		rec.CorrectCount, rec.WrongCount, rec.ReviewCount)
	if err != nil {
		return fmt.Errorf("failed to create mastery record: %v", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// upsertRecordTx writes a record inside a transaction, inserting or replacing
// the row for its (user, word) pair.
func upsertRecordTx(ctx context.Context, tx *sqlx.Tx, rec *models.MasteryRecord) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO mastery_records (user_id, word_id, stage, next_review, correct_count, wrong_count, review_count, last_reviewed, mastered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			stage = excluded.stage,
			next_review = excluded.next_review,
			correct_count = excluded.correct_count,
			wrong_count = excluded.wrong_count,
			review_count = excluded.review_count,
			last_reviewed = excluded.last_reviewed,
			mastered_at = excluded.mastered_at
	`), rec.UserID, rec.WordID, rec.Stage, rec.NextReview, rec.CorrectCount,
		rec.WrongCount, rec.ReviewCount, rec.LastReviewed, rec.MasteredAt)
	if err != nil {
		return fmt.Errorf("failed to upsert mastery record: %v", err)
	}
	return nil
}

// DueCount counts records due before the given time.
func (r *MasteryRepository) DueCount(ctx context.Context, userID int64, before time.Time) (int, error) {
	var n int
	err := DB.GetContext(ctx, &n,
		DB.Rebind("SELECT COUNT(*) FROM mastery_records WHERE user_id = ? AND next_review <= ?"),
		userID, before)
	if err != nil {
		return 0, fmt.Errorf("failed to count due records: %v", err)
	}
	return n, nil
}

// levelCountRow backs the per-level progress query.
type levelCountRow struct {
	Level   string `db:"level"`
	Total   int    `db:"total"`
	Learned int    `db:"learned"`
}

// LevelCounts returns catalog totals and learned counts (stage >= 3) per level.
func (r *MasteryRepository) LevelCounts(ctx context.Context, userID int64) (map[string]levelCountRow, error) {
	var rows []levelCountRow
	err := DB.SelectContext(ctx, &rows, DB.Rebind(`
		SELECT w.level AS level,
			COUNT(*) AS total,
			COUNT(CASE WHEN m.stage >= 3 THEN 1 END) AS learned
		FROM words w
		LEFT JOIN mastery_records m ON m.word_id = w.id AND m.user_id = ?
		GROUP BY w.level
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get level counts: %v", err)
	}
	out := make(map[string]levelCountRow, len(rows))
	for _, row := range rows {
		out[row.Level] = row
	}
	return out, nil
}
