package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/ui/theme"
)

// ScoreBar draws a 0-1 score as a filled bar, for score columns.
type ScoreBar struct {
	Score       float64
	ShowPercent bool
	Width       int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(score float64, showPercent bool, width int) ScoreBar {
	return ScoreBar{
		Score:       score,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Filled returns how many of the bar's cells are filled.
func (b ScoreBar) Filled() int {
	width := b.barWidth()
	filled := int(float64(width) * b.Score)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return filled
}

func (b ScoreBar) barWidth() int {
	w := b.Width
	if b.ShowPercent {
		w -= 6 // "  100%"
	}
	if w < 4 {
		w = 4
	}
	return w
}

// View renders the bar.
func (b ScoreBar) View() string {
	filled := b.Filled()
	empty := b.barWidth() - filled

	result := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().
			Foreground(theme.Border).
			Render(strings.Repeat("░", empty))

	if b.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(b.Score*100)))
	}
	return result
}
