// internal/solver/score.go
//
// Score implements the standard two-pass feedback algorithm.
// It is what the game itself plays back to the player; the solver uses
// it for the minimax ranking and tests use it to simulate games.

package solver

// Score computes the feedback the game would give for guess against
// answer.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for
//     that letter, mark Present and decrement; otherwise mark Absent.
//
// This ensures correct behavior with repeated letters in both answer
// and guess.
func Score(answer, guess string) Feedback {
	answerRunes := []rune(answer)
	guessRunes := []rune(guess)
	fb := make(Feedback, len(guessRunes))

	remaining := map[rune]int{}
	for i := range guessRunes {
		if i < len(answerRunes) && guessRunes[i] == answerRunes[i] {
			fb[i] = Correct
		} else if i < len(answerRunes) {
			remaining[answerRunes[i]]++
		}
	}

	for i, r := range guessRunes {
		if fb[i] == Correct {
			continue
		}
		if remaining[r] > 0 {
			fb[i] = Present
			remaining[r]--
		} else {
			fb[i] = Absent
		}
	}
	return fb
}
