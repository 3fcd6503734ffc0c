// internal/session/render.go
//
// Board rendering: one lipgloss-styled tile per letter, colored by the
// signal the game reported for that position.

package session

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/pyatibukv/internal/solver"
)

var (
	tileCorrect = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("2")). // green
			Padding(0, 1)
	tilePresent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("3")). // yellow
			Padding(0, 1)
	tileAbsent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Background(lipgloss.Color("8")). // gray
			Padding(0, 1)
)

// RenderRow renders a guess with its feedback as a colored tile row.
func RenderRow(guess string, fb solver.Feedback) string {
	runes := []rune(strings.ToUpper(guess))
	parts := make([]string, 0, len(runes))
	for i, r := range runes {
		style := tileAbsent
		if i < len(fb) {
			switch fb[i] {
			case solver.Correct:
				style = tileCorrect
			case solver.Present:
				style = tilePresent
			}
		}
		parts = append(parts, style.Render(string(r)))
	}
	return strings.Join(parts, " ")
}
