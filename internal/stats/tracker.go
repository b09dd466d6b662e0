package stats

import (
	"time"

	"github.com/example/wordich/internal/spaced_repetition"
	"github.com/example/wordich/pkg/models"
)

// Tracker maintains aggregate learner counters. It mutates the in-memory
// entities only; callers persist the result together with the mastery record
// in one transaction.
type Tracker struct{}

// New creates a tracker.
func New() *Tracker {
	return &Tracker{}
}

// RecordOutcome folds one answered quiz step into the stats. An incorrect
// answer decrements the correct counter to mirror the stage demotion, but the
// counter never goes negative.
func (t *Tracker) RecordOutcome(stats *models.UserStats, res spaced_repetition.Result, correct bool, now time.Time) {
	stats.TotalReviews++
	if correct {
		stats.CorrectReviews++
	} else if stats.CorrectReviews > 0 {
		stats.CorrectReviews--
	}
	if res.NewlyMastered {
		stats.WordsMastered++
	}
	stats.WeekActivity[stats.WeekActivity.Bucket(now)]++
}

// TouchStreak updates the daily streak from the user's last-active date.
// Called once per lesson session, not per answer: active yesterday extends
// the streak, a longer gap resets it to 1, same-day activity leaves it alone.
func (t *Tracker) TouchStreak(user *models.User, stats *models.UserStats, now time.Time) {
	today := dateOf(now)
	last := dateOf(user.LastActive)

	switch {
	case last.Equal(today):
		// already counted today
	case last.Equal(today.AddDate(0, 0, -1)):
		user.Streak++
	default:
		user.Streak = 1
	}

	stats.CurrentStreak = user.Streak
	if user.Streak > stats.LongestStreak {
		stats.LongestStreak = user.Streak
	}
	user.LastActive = now
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
