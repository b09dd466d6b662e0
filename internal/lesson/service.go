package lesson

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/wordich/internal/quiz"
	"github.com/example/wordich/internal/spaced_repetition"
	"github.com/example/wordich/internal/stats"
	"github.com/example/wordich/pkg/models"
)

// Service drives lesson sessions. It owns the per-learner session store and
// exposes the operations the transport layer calls. Operations for the same
// learner are serialized on a per-learner lock; different learners proceed in
// parallel.
type Service struct {
	store   Store
	gen     *quiz.Generator
	tracker *stats.Tracker
	planner *Planner
	now     func() time.Time

	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewService wires the lesson core together. The clock is injectable for
// scenario tests; pass nil to use time.Now.
func NewService(store Store, gen *quiz.Generator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:    store,
		gen:      gen,
		tracker:  stats.New(),
		planner:  NewPlanner(store),
		now:      now,
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// userLock returns the serialization lock for one learner.
func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *Service) session(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *Service) setSession(userID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess == nil {
		delete(s.sessions, userID)
	} else {
		s.sessions[userID] = sess
	}
}

// StartLesson selects today's batch and opens a session for the learner.
// A lesson cannot be started over a live one: the caller gets
// ErrDuplicateSession and must discard the old session explicitly first.
// ErrEmptyBatch means there is nothing to learn right now.
func (s *Service) StartLesson(ctx context.Context, userID int64) (*BatchSummary, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if s.session(userID) != nil {
		return nil, ErrDuplicateSession
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	batch, dueCount, err := s.planner.SelectBatch(ctx, user, user.DailyWords, now)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}

	// Streak bookkeeping happens once per session, not per answer.
	userStats, err := s.store.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.tracker.TouchStreak(user, userStats, now)
	if err := s.store.CommitStep(ctx, StepCommit{Stats: userStats, User: user}); err != nil {
		return nil, err
	}

	sess := &Session{
		UserID:    userID,
		Words:     batch,
		Total:     len(batch),
		StartedAt: now,
	}
	if err := s.ensurePending(sess); err != nil {
		// The session stays registered so the caller can discard it.
		s.setSession(userID, sess)
		return nil, err
	}
	s.setSession(userID, sess)

	return &BatchSummary{
		Total: len(batch),
		Due:   dueCount,
		New:   len(batch) - dueCount,
	}, nil
}

// CurrentPrompt returns the quiz for the cursor position, generating it if the
// previous step has already been recorded.
func (s *Service) CurrentPrompt(userID int64) (*QuizView, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	sess := s.session(userID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}
	if err := s.ensurePending(sess); err != nil {
		return nil, err
	}

	q := sess.Pending
	return &QuizView{
		Kind:          q.Kind,
		Prompt:        q.Prompt,
		Options:       q.Options,
		Hint:          q.Hint,
		Points:        q.Points,
		Position:      sess.Cursor + 1,
		Total:         sess.Total,
		WordID:        q.WordID,
		AudioEligible: q.AudioEligible,
	}, nil
}

// SubmitAnswer validates the answer for the pending quiz and records the
// outcome. Submitting twice for the same step fails with ErrStaleAnswer
// because the first call cleared the pending quiz.
func (s *Service) SubmitAnswer(ctx context.Context, userID int64, answer string) (*StepResult, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	sess := s.session(userID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}
	if sess.Pending == nil {
		return nil, ErrStaleAnswer
	}

	correct := quiz.CheckAnswer(*sess.Pending, answer)
	return s.finishStep(ctx, sess, correct)
}

// SkipCurrent records the pending step as incorrect without validating any
// answer text.
func (s *Service) SkipCurrent(ctx context.Context, userID int64) (*StepResult, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	sess := s.session(userID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}
	if sess.Pending == nil {
		return nil, ErrStaleAnswer
	}

	return s.finishStep(ctx, sess, false)
}

// DiscardSession drops a learner's session without recording an answer for
// the pending quiz. Discarding when no session exists is a no-op.
func (s *Service) DiscardSession(userID int64) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	s.setSession(userID, nil)
}

// ProgressSnapshot reports the learner's aggregate progress.
func (s *Service) ProgressSnapshot(ctx context.Context, userID int64) (*ProgressSnapshot, error) {
	userStats, err := s.store.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	due, err := s.store.DueTodayCount(ctx, userID, s.now().Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	levels, err := s.store.LevelCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProgressSnapshot{
		Streak:        userStats.CurrentStreak,
		Accuracy:      userStats.Accuracy(),
		TotalReviews:  userStats.TotalReviews,
		WordsMastered: userStats.WordsMastered,
		DueToday:      due,
		Levels:        levels,
	}, nil
}

// ensurePending generates the quiz for the cursor position if none is live.
// The rest of the batch serves as the distractor pool.
func (s *Service) ensurePending(sess *Session) error {
	if sess.Pending != nil || sess.Done() {
		return nil
	}
	q, err := s.gen.Generate(sess.current(), sess.Words)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	sess.Pending = &q
	return nil
}

// finishStep records the outcome of the pending step and advances the cursor.
// The mastery record and stats are committed in one transaction before any
// session state changes, so a failed write leaves the step answerable again.
func (s *Service) finishStep(ctx context.Context, sess *Session, correct bool) (*StepResult, error) {
	word := sess.current()
	now := s.now()

	rec, err := s.store.GetRecord(ctx, sess.UserID, word.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// The planner creates records for selected words, so this only covers
		// a record lost between selection and answering.
		rec = &models.MasteryRecord{UserID: sess.UserID, WordID: word.ID, NextReview: now}
	}
	userStats, err := s.store.GetOrCreateStats(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	res := spaced_repetition.Advance(rec.Stage, correct)
	spaced_repetition.Apply(rec, res, correct, now)
	s.tracker.RecordOutcome(userStats, res, correct, now)

	if err := s.store.CommitStep(ctx, StepCommit{Record: rec, Stats: userStats}); err != nil {
		return nil, err
	}

	answer := sess.Pending.Answer
	sess.Pending = nil
	if correct {
		sess.Correct++
	}
	sess.Cursor++

	result := &StepResult{Correct: correct, CorrectAnswer: answer}
	if sess.Done() {
		result.Completed = true
		result.Summary = sess.summary(now)
		s.setSession(sess.UserID, nil)
	}
	return result, nil
}
