package theme

import "github.com/charmbracelet/lipgloss"

// Low-contrast evening palette.
var (
	Night = lipgloss.Color("#191724")
	Stone = lipgloss.Color("#403d52")
	Paper = lipgloss.Color("#e0def4")
	Mist  = lipgloss.Color("#908caa")
	Dusk  = lipgloss.Color("#c4a7e7")
	Lake  = lipgloss.Color("#9ccfd8")
	Sage  = lipgloss.Color("#a3be8c")
	Ember = lipgloss.Color("#f6c177")

	Title  = lipgloss.NewStyle().Foreground(Lake).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Mist)
	Accent = lipgloss.NewStyle().Foreground(Ember).Bold(true)
	Toast  = lipgloss.NewStyle().Foreground(Night).Background(Sage).Padding(0, 1)

	Clock = lipgloss.NewStyle().Foreground(Paper).Bold(true).Padding(1, 4).
		BorderStyle(lipgloss.RoundedBorder())
)

