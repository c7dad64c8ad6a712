package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Background(lipgloss.Color("#FAFAFA"))

	RedCardStyle = CardStyle.
			Foreground(lipgloss.Color("#D7263D")).
			Bold(true)

	BlackCardStyle = CardStyle.
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// cardBackColors maps each configured card back to its colour
var cardBackColors = map[string]lipgloss.Color{
	"classic": lipgloss.Color("#1E3A8A"),
	"red":     lipgloss.Color("#B91C1C"),
	"blue":    lipgloss.Color("#2563EB"),
	"green":   lipgloss.Color("#15803D"),
	"gold":    lipgloss.Color("#B45309"),
}

// CardBackStyle returns the style for a face-down card with the given back
func CardBackStyle(name string) lipgloss.Style {
	color, ok := cardBackColors[name]
	if !ok {
		color = cardBackColors["classic"]
	}
	return CardStyle.
		Background(color).
		Foreground(lipgloss.Color("#FAFAFA"))
}
