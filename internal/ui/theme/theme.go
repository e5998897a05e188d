package theme

import "github.com/charmbracelet/lipgloss"

type Colors struct {
	Name    string
	Base    lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Accent  lipgloss.Color
	Warm    lipgloss.Color
	Up      lipgloss.Color
	Down    lipgloss.Color
}

var (
	DarkColors = Colors{
		Name:    "dark",
		Base:    lipgloss.Color("#1a1a1a"),
		Mantle:  lipgloss.Color("#111111"),
		Surface: lipgloss.Color("#404040"),
		Text:    lipgloss.Color("#e8e8e8"),
		Subtext: lipgloss.Color("#9a9a9a"),
		Accent:  lipgloss.Color("#00ff88"),
		Warm:    lipgloss.Color("#ffb347"),
		Up:      lipgloss.Color("#00ff88"),
		Down:    lipgloss.Color("#ff5c5c"),
	}
	LightColors = Colors{
		Name:    "light",
		Base:    lipgloss.Color("#ffffff"),
		Mantle:  lipgloss.Color("#eef5fc"),
		Surface: lipgloss.Color("#c1d9f0"),
		Text:    lipgloss.Color("#1e3a5f"),
		Subtext: lipgloss.Color("#5b7a99"),
		Accent:  lipgloss.Color("#4a90e2"),
		Warm:    lipgloss.Color("#d9822b"),
		Up:      lipgloss.Color("#2e9e5b"),
		Down:    lipgloss.Color("#d64545"),
	}
)

// Styles below are rebuilt by Apply; views read them at render time.
var (
	Current Colors

	Pane    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Hot     lipgloss.Style
	Accent  lipgloss.Style
	Up      lipgloss.Style
	Down    lipgloss.Style
	Bar     lipgloss.Style
	Toast   lipgloss.Style
	Palette lipgloss.Style
)

func init() {
	Apply(DarkColors.Name)
}

// Apply switches every style to the named theme; unknown names select dark.
func Apply(name string) {
	c := DarkColors
	if name == LightColors.Name {
		c = LightColors
	}
	Current = c

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.Surface).
		Foreground(c.Text).
		Padding(0, 1)
	Title = lipgloss.NewStyle().Foreground(c.Accent).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(c.Subtext)
	Hot = lipgloss.NewStyle().Foreground(c.Warm).Bold(true)
	Accent = lipgloss.NewStyle().Foreground(c.Accent)
	Up = lipgloss.NewStyle().Foreground(c.Up)
	Down = lipgloss.NewStyle().Foreground(c.Down)
	Bar = lipgloss.NewStyle().Background(c.Mantle).Foreground(c.Text)
	Toast = lipgloss.NewStyle().Background(c.Accent).Foreground(c.Base).Bold(true).Padding(0, 1)
	Palette = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.Warm).
		Background(c.Mantle).
		Foreground(c.Text).
		Padding(0, 1)
}
