package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	exportdto "zetatrack/internal/modules/export/dto"
	statsdto "zetatrack/internal/modules/stats/dto"
	"zetatrack/internal/ui/components"
	"zetatrack/internal/ui/theme"
	chartview "zetatrack/internal/ui/views/chart"
	historyview "zetatrack/internal/ui/views/history"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type statsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
	History(ctx context.Context, limit int) ([]statsdto.HistoryEntryOutput, error)
}

type exportPort interface {
	Export(ctx context.Context, path string) (exportdto.ExportOutput, error)
}

type themePort interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) (string, error)
	Toggle(ctx context.Context) (string, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabChart tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Chart", "History"}

// ─── async messages ───────────────────────────────────────────────────────────

type summaryLoadedMsg struct {
	summary statsdto.SummaryOutput
	latest  statsdto.HistoryEntryOutput
	err     error
}

type refreshTickMsg struct{}

type toastExpiredMsg struct{ id int }

type themeChangedMsg struct {
	theme string
	err   error
}

type exportedMsg struct {
	out exportdto.ExportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Export  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Theme, k.Refresh},
		{k.Export, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	ChartWindow   int
	HistoryLimit  int
	Refresh       time.Duration
	ToastDuration time.Duration
}

// Model is the root Bubble Tea model. It owns tab routing, the stats header,
// the periodic ledger refresh, toasts and the command palette. Rendering of
// the chart and the history list is delegated to sub-views.
type Model struct {
	stats  statsPort
	export exportPort
	themes themePort
	opts   Options

	chartView   chartview.Model
	historyView historyview.Model

	summary    statsdto.SummaryOutput
	hasSummary bool
	themeName  string

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	toast     string
	toastID   int
	width     int
	height    int
}

func NewModel(stats statsPort, charts chartview.ChartPort, export exportPort, themes themePort, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = 2 * time.Second
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	return Model{
		stats:       stats,
		export:      export,
		themes:      themes,
		opts:        opts,
		chartView:   chartview.New(charts, opts.ChartWindow),
		historyView: historyview.New(stats, opts.HistoryLimit),
		activeTab:   tabChart,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.chartView.Init(),
		m.historyView.Init(),
		m.loadThemeCmd(),
		m.loadSummaryCmd(),
		m.tickCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.propagateSize()

	case refreshTickMsg:
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case summaryLoadedMsg:
		if msg.err != nil {
			m.status = "stats: " + msg.err.Error()
			return m, nil
		}
		grew := m.hasSummary && msg.summary.Count > m.summary.Count
		m.summary = msg.summary
		m.hasSummary = true
		if grew {
			return m, m.showToast(fmt.Sprintf("Score %d saved to tracker!", msg.latest.Score))
		}
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case themeChangedMsg:
		if msg.err != nil {
			m.status = "theme: " + msg.err.Error()
			return m, nil
		}
		m.applyTheme(msg.theme)
		m.status = "theme: " + msg.theme
		return m, m.chartView.Reload()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d games to %s", msg.out.Rows, msg.out.Path)
		}
		return m, nil

	case chartview.LoadedMsg:
		var cmd tea.Cmd
		m.chartView, cmd = m.chartView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "t":
			return m, m.toggleThemeCmd()
		case "r":
			m.status = "refreshing"
			return m, m.refreshCmd()
		case "e":
			return m, m.exportCmd("")
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabChart:
		m.chartView, tabCmd = m.chartView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabHistory:
		content = m.historyView.View()
	default:
		content = m.chartView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	tabs := "zetatrack  " + strings.Join(parts, theme.Muted.Render(" │ "))

	s := m.summary
	stats := fmt.Sprintf("%s %d   %s %d   %s %d   %s %d",
		theme.Muted.Render("TOTAL"), s.Count,
		theme.Muted.Render("BEST"), s.Best,
		theme.Muted.Render("AVG"), s.Average,
		theme.Muted.Render("TODAY"), s.TodayCount)
	if s.Malformed > 0 {
		stats += "   " + theme.Down.Render(fmt.Sprintf("%d unreadable", s.Malformed))
	}
	return theme.Bar.Width(m.width).Render(tabs) + "\n" + theme.Accent.Render(stats) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.toast != "" {
		left = theme.Toast.Render(m.toast) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  t:theme  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + theme.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "export":
		path := ""
		if len(parts) >= 2 {
			path = strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		}
		return m, m.exportCmd(path)

	case "theme":
		if len(parts) < 2 {
			m.status = "usage: theme <dark|light>"
			return m, nil
		}
		return m, m.setThemeCmd(parts[1])

	case "view":
		if len(parts) < 2 {
			m.status = "usage: view <chart|history>"
			return m, nil
		}
		switch parts[1] {
		case "chart":
			m.activeTab = tabChart
		case "history":
			m.activeTab = tabHistory
		default:
			m.status = "unknown view: " + parts[1]
		}
		return m, nil

	case "refresh":
		return m, m.refreshCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) applyTheme(name string) {
	theme.Apply(name)
	m.themeName = name
	m.chartView.SetTheme(name)
	m.historyView.Restyle()
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-5, 1)}
	var chartCmd, historyCmd tea.Cmd
	m.chartView, chartCmd = m.chartView.Update(sz)
	m.historyView, historyCmd = m.historyView.Update(sz)
	return tea.Batch(chartCmd, historyCmd)
}

func (m *Model) showToast(message string) tea.Cmd {
	m.toastID++
	m.toast = message
	id := m.toastID
	return tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.loadSummaryCmd(), m.historyView.Reload(), m.chartView.Reload())
}

func (m Model) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := m.stats.Summary(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}
		msg := summaryLoadedMsg{summary: summary}
		if latest, err := m.stats.History(ctx, 1); err == nil && len(latest) > 0 {
			msg.latest = latest[0]
		}
		return msg
	}
}

func (m Model) loadThemeCmd() tea.Cmd {
	return func() tea.Msg {
		name, err := m.themes.Theme(context.Background())
		return themeChangedMsg{theme: name, err: err}
	}
}

func (m Model) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		name, err := m.themes.Toggle(context.Background())
		return themeChangedMsg{theme: name, err: err}
	}
}

func (m Model) setThemeCmd(name string) tea.Cmd {
	return func() tea.Msg {
		applied, err := m.themes.SetTheme(context.Background(), name)
		return themeChangedMsg{theme: applied, err: err}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.export.Export(context.Background(), path)
		return exportedMsg{out: out, err: err}
	}
}
