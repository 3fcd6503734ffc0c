// internal/session/runner.go
//
// Interactive solving loop. Up to six attempts: suggest a guess, read
// the game's feedback digits from stdin, fold them into the session,
// repeat. Malformed or contradictory feedback re-prompts instead of
// aborting the session.

package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/pyatibukv/internal/solver"
)

// DefaultMaxAttempts matches the six rounds the game allows.
const DefaultMaxAttempts = 6

// Runner drives a Session against interactive feedback input.
type Runner struct {
	In          io.Reader
	Out         io.Writer
	FirstGuess  string // normalized opening guess, may be ""
	MaxAttempts int    // 0 means DefaultMaxAttempts
}

// Run plays the session to completion. It returns nil when the word
// was found or attempts ran out normally, solver.ErrNoCandidates when
// the dictionary is exhausted, and the underlying read error if input
// ends unexpectedly.
func (r *Runner) Run(s *Session) error {
	in := bufio.NewReader(r.In)
	max := r.MaxAttempts
	if max <= 0 {
		max = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= max; attempt++ {
		if s.Remaining() == 0 {
			fmt.Fprintln(r.Out, "Кандидатов не осталось: проверьте введённые результаты.")
			return solver.ErrNoCandidates
		}
		if s.Remaining() == 1 {
			fmt.Fprintf(r.Out, "\nУгадал! Это слово: %s\n", strings.ToUpper(s.Candidates()[0]))
			return nil
		}

		guess, err := r.nextGuess(s, attempt)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "\nПопытка %d/%d — пробую: %s\n", attempt, max, strings.ToUpper(guess))

		fb, err := r.applyFeedback(in, s, guess)
		if err != nil {
			return err
		}
		if fb.AllCorrect() {
			fmt.Fprintf(r.Out, "\nУгадал! Это слово: %s\n", strings.ToUpper(guess))
			return nil
		}

		fmt.Fprintln(r.Out, RenderRow(guess, fb))
		fmt.Fprintf(r.Out, "Осталось возможных слов: %d\n", s.Remaining())
	}

	candidates := s.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintln(r.Out, "\nПосле последней фильтрации вариантов не осталось.")
		return solver.ErrNoCandidates
	}
	fmt.Fprintln(r.Out, "\nПоследняя попытка!")
	fmt.Fprintf(r.Out, "Выбранное слово: %s\n", strings.ToUpper(candidates[0]))
	fmt.Fprintf(r.Out, "Оставшиеся варианты: %s\n", strings.ToUpper(strings.Join(candidates, ", ")))
	return nil
}

func (r *Runner) nextGuess(s *Session, attempt int) (string, error) {
	if attempt == 1 {
		return s.FirstGuess(r.FirstGuess)
	}
	return s.Suggest()
}

// applyFeedback prompts until it gets a feedback line that parses and
// merges cleanly. Inconsistent feedback is reported and re-asked; the
// session is only advanced by the accepted line.
func (r *Runner) applyFeedback(in *bufio.Reader, s *Session, guess string) (solver.Feedback, error) {
	for {
		fmt.Fprint(r.Out, "Введите результат (0-серая, 1-желтая, 2-зеленая, пример 01020): ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read feedback: %w", err)
		}

		fb, err := solver.ParseFeedback(line)
		if err != nil {
			fmt.Fprintln(r.Out, "Неверный формат. Введите 5 символов из {0,1,2}. Попробуйте снова.")
			continue
		}
		if fb.AllCorrect() {
			return fb, nil
		}
		if _, err := s.Apply(guess, fb); err != nil {
			if errors.Is(err, solver.ErrInconsistentConstraint) {
				fmt.Fprintln(r.Out, "Результат противоречит предыдущим. Проверьте и введите снова.")
				continue
			}
			return nil, err
		}
		return fb, nil
	}
}
