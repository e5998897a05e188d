package chart

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chartdto "zetatrack/internal/modules/chart/dto"
	"zetatrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChartPort interface {
	Terminal(ctx context.Context, columns, rows int, theme string, window int) (chartdto.TerminalOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Output chartdto.TerminalOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ChartPort
	window  int
	theme   string
	output  chartdto.TerminalOutput
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ChartPort, window int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{port: port, window: window, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetTheme selects the palette used by the next Reload.
func (m *Model) SetTheme(name string) { m.theme = name }

// Reload renders the chart again for the current size.
func (m Model) Reload() tea.Cmd {
	cols, rows := m.area()
	if m.port == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	port, themeName, window := m.port, m.theme, m.window
	return func() tea.Msg {
		out, err := port.Terminal(context.Background(), cols, rows, themeName, window)
		return LoadedMsg{Output: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.Reload()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.output = msg.Output
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading chart…")
	}
	body := m.output.Text
	if m.err != nil {
		body = theme.Down.Render("chart: " + m.err.Error())
	}
	return theme.Pane.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(body)
}

// area is the drawable cell grid inside the pane border and padding.
func (m Model) area() (int, int) {
	return m.width - 4, m.height - 2
}
