package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/wordich/internal/spaced_repetition"
	"github.com/example/wordich/pkg/models"
)

var noon = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC) // a Monday

func TestRecordOutcomeCorrect(t *testing.T) {
	tr := New()
	stats := &models.UserStats{}

	tr.RecordOutcome(stats, spaced_repetition.Result{Stage: 1}, true, noon)

	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 1, stats.CorrectReviews)
	assert.Equal(t, 0, stats.WordsMastered)
	assert.Equal(t, 1, stats.WeekActivity[0], "Monday bucket")
}

func TestRecordOutcomeIncorrectNeverGoesNegative(t *testing.T) {
	tr := New()
	stats := &models.UserStats{}

	tr.RecordOutcome(stats, spaced_repetition.Result{Demoted: true}, false, noon)
	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 0, stats.CorrectReviews)

	stats.CorrectReviews = 2
	tr.RecordOutcome(stats, spaced_repetition.Result{Demoted: true}, false, noon)
	assert.Equal(t, 1, stats.CorrectReviews)
}

func TestRecordOutcomeCountsMasteryOnce(t *testing.T) {
	tr := New()
	stats := &models.UserStats{}

	tr.RecordOutcome(stats, spaced_repetition.Result{Stage: 5, NewlyMastered: true}, true, noon)
	tr.RecordOutcome(stats, spaced_repetition.Result{Stage: 5}, true, noon)

	assert.Equal(t, 1, stats.WordsMastered)
}

func TestRecordOutcomeWeekdayBuckets(t *testing.T) {
	tr := New()
	stats := &models.UserStats{}

	for day := 0; day < 7; day++ {
		tr.RecordOutcome(stats, spaced_repetition.Result{}, true, noon.AddDate(0, 0, day))
	}
	for i := 0; i < 7; i++ {
		assert.Equal(t, 1, stats.WeekActivity[i], "bucket %d", i)
	}
}

func TestTouchStreak(t *testing.T) {
	tests := []struct {
		name       string
		lastActive time.Time
		streak     int
		want       int
	}{
		{"active yesterday extends", noon.AddDate(0, 0, -1), 3, 4},
		{"gap resets to one", noon.AddDate(0, 0, -5), 7, 1},
		{"same day unchanged", noon.Add(-2 * time.Hour), 3, 3},
		{"first ever session", time.Time{}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			user := &models.User{Streak: tt.streak, LastActive: tt.lastActive}
			stats := &models.UserStats{CurrentStreak: tt.streak, LongestStreak: tt.streak}

			tr.TouchStreak(user, stats, noon)

			assert.Equal(t, tt.want, user.Streak)
			assert.Equal(t, tt.want, stats.CurrentStreak)
			assert.Equal(t, noon, user.LastActive)
		})
	}
}

func TestTouchStreakTracksLongest(t *testing.T) {
	tr := New()
	user := &models.User{Streak: 9, LastActive: noon.AddDate(0, 0, -1)}
	stats := &models.UserStats{LongestStreak: 9}

	tr.TouchStreak(user, stats, noon)

	assert.Equal(t, 10, stats.CurrentStreak)
	assert.Equal(t, 10, stats.LongestStreak)
}
