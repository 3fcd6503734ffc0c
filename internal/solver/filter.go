// internal/solver/filter.go
//
// Candidate filtering and next-guess ranking.
// Filter is a single pass over the dictionary snapshot that keeps the
// original ordering. Ranking is a pluggable strategy: the surrounding
// tool chooses between letter-frequency scoring (default) and the
// minimax strategy at startup.

package solver

// Filter returns the dictionary words consistent with cs, preserving
// dictionary order. An empty result is not an error here; callers that
// treat it as terminal check for it and surface ErrNoCandidates.
func Filter(dictionary []string, cs ConstraintSet) []string {
	out := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		if cs.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// Ranker picks the next guess from the current candidate set.
type Ranker interface {
	// Best returns the suggested next guess. candidates is the filtered
	// set in dictionary order; implementations must not reorder it.
	// Returns ErrNoCandidates when the set is empty.
	Best(candidates []string) (string, error)
}

// FrequencyRanker scores a candidate by summing, over its distinct
// letters, the number of occurrences of that letter across the current
// candidate set. Words sharing letters with many remaining candidates
// score high. Ties resolve to the earliest candidate.
type FrequencyRanker struct{}

func (FrequencyRanker) Best(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	freq := map[rune]int{}
	for _, w := range candidates {
		for _, r := range w {
			freq[r]++
		}
	}
	best, bestScore := "", -1
	for _, w := range candidates {
		seen := map[rune]bool{}
		score := 0
		for _, r := range w {
			if seen[r] {
				continue
			}
			seen[r] = true
			score += freq[r]
		}
		if score > bestScore {
			best, bestScore = w, score
		}
	}
	return best, nil
}

// minimaxPool caps how many candidates the minimax strategy evaluates;
// scoring is quadratic in the candidate count.
const minimaxPool = 50

// MinimaxRanker scores a candidate by the size of the largest feedback
// bucket it could leave behind: for every remaining word taken as the
// answer, the candidate's feedback pattern is computed, patterns are
// bucketed, and the worst case (largest bucket) is the score. Lower is
// better. With two candidates or fewer the first one is returned.
type MinimaxRanker struct{}

func (MinimaxRanker) Best(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	if len(candidates) <= 2 {
		return candidates[0], nil
	}
	pool := candidates
	if len(pool) > minimaxPool {
		pool = pool[:minimaxPool]
	}
	best, bestScore := pool[0], len(candidates)+1
	for _, guess := range pool {
		buckets := map[string]int{}
		worst := 0
		for _, answer := range candidates {
			p := Score(answer, guess).String()
			buckets[p]++
			if buckets[p] > worst {
				worst = buckets[p]
			}
		}
		if worst < bestScore {
			best, bestScore = guess, worst
		}
	}
	return best, nil
}
