package spaced_repetition

import (
	"time"

	"github.com/example/wordich/pkg/models"
)

// RelearnDelay is the short delay applied after an incorrect answer instead of
// a full-day interval.
const RelearnDelay = 6 * time.Hour

// stageDelays maps a stage reached by a correct answer to the delay until the
// next review.
var stageDelays = map[int]time.Duration{
	1: 24 * time.Hour,
	2: 3 * 24 * time.Hour,
	3: 7 * 24 * time.Hour,
	4: 14 * 24 * time.Hour,
	5: 30 * 24 * time.Hour,
}

// Result is the scheduling decision for one answered review.
type Result struct {
	Stage int
	// Delay until the next review, measured from the moment the answer is
	// recorded, not from the previous due date.
	Delay time.Duration
	// NewlyMastered is set on the first transition into the maximum stage.
	NewlyMastered bool
	// Demoted is set when an incorrect answer lowered the stage, so callers
	// can adjust optimistic counters.
	Demoted bool
}

// Advance computes the new stage and review delay for a single answer.
// It is pure: it never touches storage, callers persist the result.
func Advance(stage int, correct bool) Result {
	if stage < 0 {
		stage = 0
	}
	if stage > models.MaxStage {
		stage = models.MaxStage
	}

	if !correct {
		newStage := stage - 2
		if newStage < 0 {
			newStage = 0
		}
		return Result{
			Stage:   newStage,
			Delay:   RelearnDelay,
			Demoted: newStage < stage,
		}
	}

	newStage := stage + 1
	if newStage > models.MaxStage {
		newStage = models.MaxStage
	}
	return Result{
		Stage:         newStage,
		Delay:         stageDelays[newStage],
		NewlyMastered: stage < models.MaxStage && newStage == models.MaxStage,
	}
}

// Apply records a scheduling result on a mastery record. The stats tracker
// mutates the aggregate counters separately; both are persisted in one
// transaction by the caller.
func Apply(rec *models.MasteryRecord, res Result, correct bool, now time.Time) {
	rec.Stage = res.Stage
	rec.NextReview = now.Add(res.Delay)
	rec.ReviewCount++
	if correct {
		rec.CorrectCount++
	} else {
		rec.WrongCount++
	}
	t := now
	rec.LastReviewed = &t
	if res.NewlyMastered && rec.MasteredAt == nil {
		rec.MasteredAt = &t
	}
}
