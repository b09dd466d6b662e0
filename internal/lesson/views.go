package lesson

import (
	"time"

	"github.com/example/wordich/internal/quiz"
)

// BatchSummary describes a freshly started lesson.
type BatchSummary struct {
	Total int
	Due   int
	New   int
}

// QuizView is the transport-agnostic rendering of the current prompt. Each
// transport adapts it to its own message format.
type QuizView struct {
	Kind          quiz.Kind
	Prompt        string
	Options       []string
	Hint          string
	Points        int
	Position      int // 1-based position in the batch
	Total         int
	WordID        int64
	AudioEligible bool
}

// StepResult is the outcome of answering or skipping one step.
type StepResult struct {
	Correct       bool
	CorrectAnswer string
	Completed     bool
	// Summary is set only when the step completed the lesson.
	Summary *Summary
}

// Summary is the terminal output of a completed lesson.
type Summary struct {
	Correct  int
	Total    int
	Accuracy float64
	Elapsed  time.Duration
}

// ProgressSnapshot aggregates a learner's progress for reporting.
type ProgressSnapshot struct {
	Streak        int
	Accuracy      float64
	TotalReviews  int
	WordsMastered int
	DueToday      int
	Levels        map[string]LevelCount
}
