package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Feedback
		wantErr bool
	}{
		{name: "all digits", in: "01020", want: Feedback{Absent, Present, Absent, Correct, Absent}},
		{name: "trailing newline", in: "22222\n", want: Feedback{Correct, Correct, Correct, Correct, Correct}},
		{name: "too short", in: "0102", wantErr: true},
		{name: "too long", in: "010203", wantErr: true},
		{name: "unknown digit", in: "01023", wantErr: true},
		{name: "letters", in: "абвгд", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFeedback(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrMalformedFeedback)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateRejectsMalformedInput(t *testing.T) {
	_, err := Evaluate("опер", Feedback{Correct, Correct, Correct, Correct, Correct})
	require.ErrorIs(t, err, ErrMalformedFeedback)

	_, err = Evaluate("опера", Feedback{Correct, Correct})
	require.ErrorIs(t, err, ErrMalformedFeedback)

	_, err = Evaluate("опера", Feedback{Correct, Correct, Correct, Correct, Signal(9)})
	require.ErrorIs(t, err, ErrMalformedFeedback)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	fb, err := ParseFeedback("21010")
	require.NoError(t, err)

	d1, err := Evaluate("арена", fb)
	require.NoError(t, err)
	d2, err := Evaluate("арена", fb)
	require.NoError(t, err)

	dict := []string{"арбуз", "актер", "адрес", "астра"}
	require.Equal(t, Filter(dict, d1), Filter(dict, d2))
}

func TestEvaluateFixesCorrectPositions(t *testing.T) {
	fb := Feedback{Correct, Absent, Absent, Absent, Correct}
	delta, err := Evaluate("опера", fb)
	require.NoError(t, err)

	require.Equal(t, 'о', delta.FixedAt(0))
	require.Equal(t, 'а', delta.FixedAt(4))
	require.Equal(t, rune(0), delta.FixedAt(2))
}

func TestMergeDetectsFixedPositionConflict(t *testing.T) {
	d1, err := Evaluate("опера", Feedback{Correct, Correct, Correct, Correct, Correct})
	require.NoError(t, err)
	d2, err := Evaluate("опара", Feedback{Correct, Correct, Correct, Correct, Correct})
	require.NoError(t, err)

	cs, err := NewConstraintSet().Merge(d1)
	require.NoError(t, err)
	_, err = cs.Merge(d2)
	require.ErrorIs(t, err, ErrInconsistentConstraint)
}

func TestMergeDetectsCountContradiction(t *testing.T) {
	// "е" confirmed at position 2, then reported absent everywhere.
	d1, err := Evaluate("опера", Feedback{Absent, Absent, Correct, Absent, Absent})
	require.NoError(t, err)
	d2, err := Evaluate("сетка", Feedback{Absent, Absent, Absent, Absent, Absent})
	require.NoError(t, err)

	cs, err := NewConstraintSet().Merge(d1)
	require.NoError(t, err)
	_, err = cs.Merge(d2)
	require.ErrorIs(t, err, ErrInconsistentConstraint)
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	dict := []string{"опера", "опара", "арена"}

	base := NewConstraintSet()
	delta, err := Evaluate("опера", Score("опара", "опера"))
	require.NoError(t, err)

	_, err = base.Merge(delta)
	require.NoError(t, err)

	// base must still match everything.
	require.Equal(t, dict, Filter(dict, base))
}

func TestMergeIsMonotonic(t *testing.T) {
	dict := []string{"опера", "опара", "арена", "актер", "сцена", "театр"}
	answer := "опара"

	cs := NewConstraintSet()
	prev := len(Filter(dict, cs))
	for _, guess := range []string{"театр", "арена", "опера"} {
		delta, err := Evaluate(guess, Score(answer, guess))
		require.NoError(t, err)
		cs, err = cs.Merge(delta)
		require.NoError(t, err)

		filtered := Filter(dict, cs)
		require.LessOrEqual(t, len(filtered), prev)
		require.Contains(t, filtered, answer, "true answer must survive every round")
		prev = len(filtered)
	}
}
