package lesson

import (
	"time"

	"github.com/example/wordich/internal/quiz"
	"github.com/example/wordich/pkg/models"
)

// Session is one learner's walk through a selected batch. It is ephemeral:
// held in memory only, discarded on completion or abandonment, and never
// persisted across restarts. A finished session is never reused.
type Session struct {
	UserID    int64
	Words     []models.Word
	Cursor    int
	Correct   int
	Total     int
	StartedAt time.Time
	// Pending is the quiz awaiting an answer, nil between recording an answer
	// and generating the next prompt.
	Pending *quiz.Quiz
}

// Done reports whether the cursor has walked past the last word.
func (s *Session) Done() bool {
	return s.Cursor >= s.Total
}

func (s *Session) current() models.Word {
	return s.Words[s.Cursor]
}

// summary computes the terminal lesson result.
func (s *Session) summary(now time.Time) *Summary {
	accuracy := 0.0
	if s.Total > 0 {
		accuracy = float64(s.Correct) / float64(s.Total) * 100
	}
	return &Summary{
		Correct:  s.Correct,
		Total:    s.Total,
		Accuracy: accuracy,
		Elapsed:  now.Sub(s.StartedAt),
	}
}
