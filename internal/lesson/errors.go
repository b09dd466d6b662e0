package lesson

import "errors"

var (
	// ErrEmptyBatch signals that no due or new words are available. It is a
	// normal outcome rendered as "nothing to learn", not a failure.
	ErrEmptyBatch = errors.New("lesson: no words to learn right now")

	// ErrNoActiveSession is returned when an operation requires a session the
	// learner does not have. Indicates a transport-layer ordering bug.
	ErrNoActiveSession = errors.New("lesson: no active session")

	// ErrStaleAnswer is returned when an answer arrives for a step that has
	// already been recorded.
	ErrStaleAnswer = errors.New("lesson: answer already recorded for this step")

	// ErrDuplicateSession is returned when a lesson is started while another
	// one is still active. The caller must discard the old session first.
	ErrDuplicateSession = errors.New("lesson: session already active")

	// ErrGeneration wraps a quiz generation failure. The session remains
	// discardable afterwards.
	ErrGeneration = errors.New("lesson: quiz generation failed")
)
