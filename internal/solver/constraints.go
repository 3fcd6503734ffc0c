// internal/solver/constraints.go
//
// ConstraintSet: accumulated knowledge about the hidden word.
// Responsibilities:
//   - Evaluate a (guess, feedback) pair into a constraint delta.
//   - Merge deltas functionally: Merge never mutates its receiver, it
//     returns a new, strictly tighter ConstraintSet (or an error).
//   - Match a word against the accumulated constraints.
//
// The duplicate-letter rule lives here: an Absent signal caps the
// letter's total count at the number of Correct/Present signals that
// same letter earned in the same guess (zero when it earned none).

package solver

// ConstraintSet describes which words are still possible.
// The zero value (via NewConstraintSet) matches every word.
type ConstraintSet struct {
	fixed    [WordLen]rune              // required letter per position; 0 = unknown
	excluded [WordLen]map[rune]struct{} // letters banned per position
	minCount map[rune]int               // letter must occur at least this often
	maxCount map[rune]int               // letter must occur at most this often
}

// NewConstraintSet returns an empty constraint set.
func NewConstraintSet() ConstraintSet {
	var cs ConstraintSet
	for i := range cs.excluded {
		cs.excluded[i] = map[rune]struct{}{}
	}
	cs.minCount = map[rune]int{}
	cs.maxCount = map[rune]int{}
	return cs
}

// Evaluate turns one round of feedback into a constraint delta.
// Pure: identical inputs always produce identical deltas.
//
// Rules per position i:
//   - Correct fixes position i to guess[i].
//   - Present bans guess[i] at position i.
//   - Absent bans guess[i] at position i and caps the letter's total
//     count at the number of Correct/Present signals it earned in this
//     guess — zero such signals means the letter is absent entirely.
//
// Correct and Present both raise the letter's minimum count.
func Evaluate(guess string, fb Feedback) (ConstraintSet, error) {
	runes := []rune(guess)
	if len(runes) != WordLen || !fb.Valid() {
		return ConstraintSet{}, ErrMalformedFeedback
	}

	delta := NewConstraintSet()

	// Number of Correct/Present signals per letter in this guess.
	earned := map[rune]int{}
	hasAbsent := map[rune]bool{}
	for i, r := range runes {
		switch fb[i] {
		case Correct, Present:
			earned[r]++
		case Absent:
			hasAbsent[r] = true
		}
	}

	for i, r := range runes {
		switch fb[i] {
		case Correct:
			delta.fixed[i] = r
		case Present, Absent:
			delta.excluded[i][r] = struct{}{}
		}
	}
	for r, n := range earned {
		delta.minCount[r] = n
	}
	for r := range hasAbsent {
		delta.maxCount[r] = earned[r]
	}
	return delta, nil
}

// Merge combines cs with a delta into a new ConstraintSet.
// Neither input is modified. Constraints only tighten: fixed positions
// stay fixed, exclusion sets grow, minimums rise, maximums fall.
// Returns ErrInconsistentConstraint when the delta contradicts cs.
func (cs ConstraintSet) Merge(delta ConstraintSet) (ConstraintSet, error) {
	out := cs.clone()

	for i := 0; i < WordLen; i++ {
		if delta.fixed[i] != 0 {
			if out.fixed[i] != 0 && out.fixed[i] != delta.fixed[i] {
				return ConstraintSet{}, ErrInconsistentConstraint
			}
			out.fixed[i] = delta.fixed[i]
		}
		for r := range delta.excluded[i] {
			out.excluded[i][r] = struct{}{}
		}
		if out.fixed[i] != 0 {
			if _, banned := out.excluded[i][out.fixed[i]]; banned {
				return ConstraintSet{}, ErrInconsistentConstraint
			}
		}
	}

	for r, n := range delta.minCount {
		if n > out.minCount[r] {
			out.minCount[r] = n
		}
	}
	for r, n := range delta.maxCount {
		if cur, ok := out.maxCount[r]; !ok || n < cur {
			out.maxCount[r] = n
		}
	}
	for r, max := range out.maxCount {
		if out.minCount[r] > max {
			return ConstraintSet{}, ErrInconsistentConstraint
		}
	}
	return out, nil
}

// Match reports whether word satisfies every accumulated constraint.
func (cs ConstraintSet) Match(word string) bool {
	runes := []rune(word)
	if len(runes) != WordLen {
		return false
	}
	counts := map[rune]int{}
	for i, r := range runes {
		if cs.fixed[i] != 0 && cs.fixed[i] != r {
			return false
		}
		if cs.excluded[i] != nil {
			if _, banned := cs.excluded[i][r]; banned {
				return false
			}
		}
		counts[r]++
	}
	for r, min := range cs.minCount {
		if counts[r] < min {
			return false
		}
	}
	for r, max := range cs.maxCount {
		if counts[r] > max {
			return false
		}
	}
	return true
}

// FixedAt returns the required letter for a position, or 0 if unknown.
func (cs ConstraintSet) FixedAt(i int) rune {
	if i < 0 || i >= WordLen {
		return 0
	}
	return cs.fixed[i]
}

// clone deep-copies cs so merged sets never share map storage.
func (cs ConstraintSet) clone() ConstraintSet {
	out := NewConstraintSet()
	out.fixed = cs.fixed
	for i := range cs.excluded {
		for r := range cs.excluded[i] {
			out.excluded[i][r] = struct{}{}
		}
	}
	for r, n := range cs.minCount {
		out.minCount[r] = n
	}
	for r, n := range cs.maxCount {
		out.maxCount[r] = n
	}
	return out
}
