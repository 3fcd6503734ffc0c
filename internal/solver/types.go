// internal/solver/types.go
//
// Core type definitions for the solving engine.
// Defines:
//   - Signal: per-letter feedback for one position of a guess.
//   - Feedback: ordered sequence of 5 signals, aligned with the guess.
//   - Sentinel errors shared by the solver and its callers.

package solver

import (
	"errors"
	"strings"
)

// WordLen is the fixed word length of the game.
const WordLen = 5

// Signal is the evaluation result for a single letter of a guess.
// The numeric values match the digits the game feedback is typed as:
//   - 0: letter does not occur (subject to duplicate-count rules).
//   - 1: letter occurs, but at a different position.
//   - 2: letter occurs at exactly this position.
type Signal uint8

const (
	Absent  Signal = iota // digit "0"
	Present               // digit "1"
	Correct               // digit "2"
)

// Feedback is one round of per-position signals.
// A valid Feedback has exactly WordLen entries.
type Feedback []Signal

var (
	// ErrMalformedFeedback is returned when a feedback sequence is not
	// exactly WordLen recognized signals. No partial update is applied.
	ErrMalformedFeedback = errors.New("solver: malformed feedback")

	// ErrInconsistentConstraint is returned by Merge when a new delta
	// contradicts already-accumulated knowledge (e.g. a fixed position).
	// The caller may discard the delta and ask for corrected feedback.
	ErrInconsistentConstraint = errors.New("solver: inconsistent constraint")

	// ErrNoCandidates signals an exhausted or contradictory feedback
	// history: no dictionary word satisfies the accumulated constraints.
	ErrNoCandidates = errors.New("solver: no candidates remain")
)

// ParseFeedback converts a digit string like "01020" into a Feedback.
func ParseFeedback(s string) (Feedback, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != WordLen {
		return nil, ErrMalformedFeedback
	}
	fb := make(Feedback, WordLen)
	for i, r := range runes {
		switch r {
		case '0':
			fb[i] = Absent
		case '1':
			fb[i] = Present
		case '2':
			fb[i] = Correct
		default:
			return nil, ErrMalformedFeedback
		}
	}
	return fb, nil
}

// Valid reports whether fb has exactly WordLen recognized signals.
func (fb Feedback) Valid() bool {
	if len(fb) != WordLen {
		return false
	}
	for _, s := range fb {
		if s > Correct {
			return false
		}
	}
	return true
}

// AllCorrect reports whether every signal is Correct (the word is found).
func (fb Feedback) AllCorrect() bool {
	for _, s := range fb {
		if s != Correct {
			return false
		}
	}
	return len(fb) == WordLen
}

// String renders the feedback back to its digit form.
func (fb Feedback) String() string {
	var b strings.Builder
	for _, s := range fb {
		b.WriteByte('0' + byte(s))
	}
	return b.String()
}
