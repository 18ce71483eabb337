package termui

import (
	"github.com/charmbracelet/lipgloss"
)

// DefaultColor is the phosphor color used when none is configured.
const DefaultColor = "46"

// Theme holds the styles shared by every page. The phosphor color tints
// the handheld screens; the marketplace pages keep neutral colors.
type Theme struct {
	Phosphor lipgloss.Color

	Screen  lipgloss.Style
	Text    lipgloss.Style
	Dim     lipgloss.Style
	Heading lipgloss.Style
	FKey    lipgloss.Style
	Chip    lipgloss.Style
	Status  lipgloss.Style

	Page      lipgloss.Style
	Brand     lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style
	Button    lipgloss.Style
	Primary   lipgloss.Style
	Focused   lipgloss.Style
	BubbleYou lipgloss.Style
	BubbleThe lipgloss.Style
}

// NewTheme builds the styles for a phosphor color, which is any value
// lipgloss.Color accepts.
func NewTheme(color string) Theme {
	if color == "" {
		color = DefaultColor
	}
	p := lipgloss.Color(color)
	dim := lipgloss.NewStyle().Foreground(p).Faint(true)
	return Theme{
		Phosphor: p,
		Screen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p).
			Padding(0, 1),
		Text:    lipgloss.NewStyle().Foreground(p),
		Dim:     dim,
		Heading: lipgloss.NewStyle().Foreground(p).Bold(true),
		FKey:    lipgloss.NewStyle().Background(p).Foreground(lipgloss.Color("0")).Padding(0, 1),
		Chip:    lipgloss.NewStyle().Foreground(p).Padding(0, 1),
		Status:  dim,

		Page:    lipgloss.NewStyle().Padding(1, 2),
		Brand:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Price:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Button:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2),
		Primary: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 2),
		Focused: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 2),
		BubbleYou: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("25")).
			Padding(0, 1),
		BubbleThe: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("252")).
			Padding(0, 1),
	}
}
