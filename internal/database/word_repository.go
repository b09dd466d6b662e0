package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordich/pkg/models"
)

// WordRepository handles database operations for the word catalog
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// eligibleLevels returns all levels up to and including the given one.
func eligibleLevels(level string) []string {
	rank := models.LevelRank(level)
	if rank < 0 {
		return models.Levels
	}
	return models.Levels[:rank+1]
}

// GetByIDs returns the catalog words with the given ids, in no particular order.
func (r *WordRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM words WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var words []models.Word
	if err := DB.SelectContext(ctx, &words, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// NewForUser returns catalog words the user has no mastery record for yet,
// filtered to the user's level or below, commonest first.
func (r *WordRepository) NewForUser(ctx context.Context, userID int64, level string, limit int) ([]models.Word, error) {
	query, args, err := sqlx.In(`
		SELECT * FROM words
		WHERE level IN (?)
		AND id NOT IN (SELECT word_id FROM mastery_records WHERE user_id = ?)
		ORDER BY frequency DESC
		LIMIT ?
	`, eligibleLevels(level), userID, limit)
	if err != nil {
		return nil, err
	}
	var words []models.Word
	if err := DB.SelectContext(ctx, &words, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get new words: %v", err)
	}
	return words, nil
}

// Upsert inserts a catalog word or updates the existing row with the same
// surface form and translation. Used by the dictionary importer.
func (r *WordRepository) Upsert(ctx context.Context, word *models.Word) error {
	_, err := DB.ExecContext(ctx, DB.Rebind(`
		INSERT INTO words (word, translation, transcription, example, example_translation, level, topic, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (word, translation) DO UPDATE SET
			transcription = excluded.transcription,
			example = excluded.example,
			example_translation = excluded.example_translation,
			level = excluded.level,
			topic = excluded.topic,
			frequency = excluded.frequency
	`),
		word.Word, word.Translation, word.Transcription, word.Example,
		word.ExampleTranslation, word.Level, word.Topic, word.Frequency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert word %q: %v", word.Word, err)
	}
	return nil
}

// Count returns the number of catalog words.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, err
	}
	return n, nil
}
