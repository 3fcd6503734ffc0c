// internal/session/session.go
//
// A solving session: one dictionary snapshot, the accumulated
// constraint set, and the candidates still in play. The session owns
// no I/O; the interactive loop and the HTTP layer both drive it
// through Apply/Suggest.

package session

import (
	"fmt"

	"github.com/robalobadob/pyatibukv/internal/solver"
)

// Attempt is one played round, kept for rendering the board.
type Attempt struct {
	Guess    string          `json:"guess"`
	Feedback solver.Feedback `json:"feedback"`
}

// Session tracks solving progress for a single game.
type Session struct {
	dictionary  []string
	constraints solver.ConstraintSet
	candidates  []string
	ranker      solver.Ranker
	attempts    []Attempt
}

// New takes its own copy of words so later dictionary edits can never
// leak into a running session.
func New(words []string, ranker solver.Ranker) *Session {
	snapshot := append([]string(nil), words...)
	if ranker == nil {
		ranker = solver.FrequencyRanker{}
	}
	return &Session{
		dictionary:  snapshot,
		constraints: solver.NewConstraintSet(),
		candidates:  snapshot,
		ranker:      ranker,
	}
}

// Remaining reports how many candidates are still in play.
func (s *Session) Remaining() int { return len(s.candidates) }

// Candidates returns the current candidate set in dictionary order.
func (s *Session) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

// InDictionary reports whether w was in the session's snapshot.
func (s *Session) InDictionary(w string) bool {
	for _, x := range s.dictionary {
		if x == w {
			return true
		}
	}
	return false
}

// Attempts returns the rounds played so far.
func (s *Session) Attempts() []Attempt {
	return append([]Attempt(nil), s.attempts...)
}

// Apply folds one round of feedback into the session and refilters.
// On error (malformed feedback, inconsistent constraint) the session
// state is left untouched so the caller can re-prompt.
func (s *Session) Apply(guess string, fb solver.Feedback) (int, error) {
	delta, err := solver.Evaluate(guess, fb)
	if err != nil {
		return len(s.candidates), err
	}
	merged, err := s.constraints.Merge(delta)
	if err != nil {
		return len(s.candidates), fmt.Errorf("guess %q: %w", guess, err)
	}
	s.constraints = merged
	s.candidates = solver.Filter(s.candidates, merged)
	s.attempts = append(s.attempts, Attempt{Guess: guess, Feedback: fb})
	return len(s.candidates), nil
}

// Suggest asks the ranker for the next guess.
// Returns solver.ErrNoCandidates when nothing is left.
func (s *Session) Suggest() (string, error) {
	return s.ranker.Best(s.candidates)
}

// FirstGuess picks the opening guess: preferred if it is in the
// dictionary, otherwise the first candidate.
func (s *Session) FirstGuess(preferred string) (string, error) {
	if len(s.candidates) == 0 {
		return "", solver.ErrNoCandidates
	}
	if preferred != "" && s.InDictionary(preferred) {
		return preferred, nil
	}
	return s.candidates[0], nil
}
