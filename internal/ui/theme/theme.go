package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// Color palette
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Tables
var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	TableBorder = lipgloss.NewStyle().
			Foreground(Border)
)

// Card frames a block of summary text.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 2)

// TierStyle returns the style used for a tier label. Labels outside the
// shipped vocabulary use the body color.
func TierStyle(l tier.Label) lipgloss.Style {
	switch l {
	case tier.Berprestasi:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case tier.Cukup:
		return lipgloss.NewStyle().Foreground(Accent)
	case tier.PerluPerhatian:
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}
