package lesson

import (
	"context"
	"time"

	"github.com/example/wordich/pkg/models"
)

// Planner selects the ordered batch of words for a lesson: everything due for
// review first, then new words up to the daily quota.
type Planner struct {
	store Store
}

// NewPlanner creates a planner over the given store.
func NewPlanner(store Store) *Planner {
	return &Planner{store: store}
}

// SelectBatch builds the lesson batch for a user. Due words come first in
// (next_review, stage) order; the remainder of the quota is backfilled with
// unseen catalog words at the user's level or below, commonest first. Every
// backfilled word immediately gets a stage-0 mastery record so it is never
// selected as new again. An empty result is a normal outcome, not an error.
// The second return value is the number of due words in the batch.
func (p *Planner) SelectBatch(ctx context.Context, user *models.User, quota int, now time.Time) ([]models.Word, int, error) {
	if quota <= 0 {
		return nil, 0, nil
	}

	due, err := p.store.DueRecords(ctx, user.ID, now, quota)
	if err != nil {
		return nil, 0, err
	}

	batch := make([]models.Word, 0, quota)
	if len(due) > 0 {
		ids := make([]int64, len(due))
		for i, rec := range due {
			ids[i] = rec.WordID
		}
		words, err := p.store.WordsByIDs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		// Restore the due ordering lost by the IN query.
		byID := make(map[int64]models.Word, len(words))
		for _, w := range words {
			byID[w.ID] = w
		}
		for _, rec := range due {
			if w, ok := byID[rec.WordID]; ok {
				batch = append(batch, w)
			}
		}
	}
	dueCount := len(batch)

	if remaining := quota - dueCount; remaining > 0 {
		fresh, err := p.store.NewWords(ctx, user.ID, user.Level, remaining)
		if err != nil {
			return nil, 0, err
		}
		for _, w := range fresh {
			rec := &models.MasteryRecord{
				UserID:     user.ID,
				WordID:     w.ID,
				Stage:      0,
				NextReview: now,
			}
			if err := p.store.CreateRecord(ctx, rec); err != nil {
				return nil, 0, err
			}
			batch = append(batch, w)
		}
	}

	return batch, dueCount, nil
}
