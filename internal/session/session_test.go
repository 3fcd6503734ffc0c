package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pyatibukv/internal/solver"
)

func TestNewTakesSnapshot(t *testing.T) {
	words := []string{"опера", "опара"}
	s := New(words, nil)

	words[0] = "арена"
	require.Equal(t, []string{"опера", "опара"}, s.Candidates())
}

func TestApplyNarrowsCandidates(t *testing.T) {
	s := New([]string{"опера", "опара", "арена"}, nil)

	fb := solver.Score("опара", "опера")
	n, err := s.Apply("опера", fb)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []string{"опара"}, s.Candidates())
	require.Len(t, s.Attempts(), 1)
}

func TestApplyLeavesStateOnError(t *testing.T) {
	s := New([]string{"смысл", "сцена", "опера"}, nil)

	// Fix position 0 to "с".
	fb, err := solver.ParseFeedback("20000")
	require.NoError(t, err)
	_, err = s.Apply("сцена", fb)
	require.NoError(t, err)
	require.Equal(t, []string{"смысл"}, s.Candidates())

	// Contradicting fixed position must not advance the session.
	_, err = s.Apply("театр", fb)
	require.ErrorIs(t, err, solver.ErrInconsistentConstraint)
	require.Equal(t, []string{"смысл"}, s.Candidates())
	require.Len(t, s.Attempts(), 1)

	// Malformed feedback likewise.
	_, err = s.Apply("театр", solver.Feedback{solver.Correct})
	require.ErrorIs(t, err, solver.ErrMalformedFeedback)
	require.Len(t, s.Attempts(), 1)
}

func TestFirstGuess(t *testing.T) {
	s := New([]string{"арена", "опера"}, nil)

	g, err := s.FirstGuess("опера")
	require.NoError(t, err)
	require.Equal(t, "опера", g)

	g, err = s.FirstGuess("тоска")
	require.NoError(t, err)
	require.Equal(t, "арена", g, "unknown preference falls back to first candidate")

	empty := New(nil, nil)
	_, err = empty.FirstGuess("опера")
	require.ErrorIs(t, err, solver.ErrNoCandidates)
}

func runGame(t *testing.T, words []string, first, input string) (string, error) {
	t.Helper()
	var out strings.Builder
	r := &Runner{
		In:         strings.NewReader(input),
		Out:        &out,
		FirstGuess: first,
	}
	err := r.Run(New(words, nil))
	return out.String(), err
}

func TestRunnerSolvesAfterOneRound(t *testing.T) {
	out, err := runGame(t,
		[]string{"опера", "опара", "арена", "сцена"},
		"опера",
		"22022\n",
	)
	require.NoError(t, err)
	require.Contains(t, out, "пробую: ОПЕРА")
	require.Contains(t, out, "Осталось возможных слов: 1")
	require.Contains(t, out, "Это слово: ОПАРА")
}

func TestRunnerAcceptsDirectWin(t *testing.T) {
	out, err := runGame(t,
		[]string{"опера", "опара"},
		"опера",
		"22222\n",
	)
	require.NoError(t, err)
	require.Contains(t, out, "Это слово: ОПЕРА")
}

func TestRunnerRepromptsOnMalformedFeedback(t *testing.T) {
	out, err := runGame(t,
		[]string{"опера", "опара", "арена"},
		"опера",
		"999\n22022\n",
	)
	require.NoError(t, err)
	require.Contains(t, out, "Неверный формат")
	require.Contains(t, out, "Это слово: ОПАРА")
}

func TestRunnerReportsExhaustedCandidates(t *testing.T) {
	// All-absent feedback for "опера" wipes out this dictionary.
	out, err := runGame(t,
		[]string{"опера", "опара", "арена", "сцена"},
		"опера",
		"00000\n",
	)
	require.ErrorIs(t, err, solver.ErrNoCandidates)
	require.Contains(t, out, "Кандидатов не осталось")
}

func TestRenderRowMarksEveryPosition(t *testing.T) {
	fb, err := solver.ParseFeedback("21002")
	require.NoError(t, err)
	row := RenderRow("опера", fb)
	for _, letter := range []string{"О", "П", "Е", "Р", "А"} {
		require.Contains(t, row, letter)
	}
}
