package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "zetatrack/internal/modules/stats/dto"
	"zetatrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	History(ctx context.Context, limit int) ([]statsdto.HistoryEntryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []statsdto.HistoryEntryOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry statsdto.HistoryEntryOutput
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%3d  %s", i.entry.Score, Indicator(i.entry.Trend))
}

func (i entryItem) Description() string {
	local := i.entry.EndedAt.Local()
	return fmt.Sprintf("%s  %s  %s",
		local.Format("02/01/2006"),
		local.Format("15:04"),
		duration(i.entry))
}

func (i entryItem) FilterValue() string { return fmt.Sprint(i.entry.Score) }

// Indicator renders the trend against the next older game.
func Indicator(trend string) string {
	switch trend {
	case "up":
		return theme.Up.Render("▲")
	case "down":
		return theme.Down.Render("▼")
	case "neutral":
		return theme.Muted.Render("●")
	default:
		return ""
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HistoryPort
	limit   int
	list    list.Model
	entries []statsdto.HistoryEntryOutput
	err     error
	width   int
	height  int
}

func New(port HistoryPort, limit int) Model {
	l := list.New(nil, newDelegate(), 0, 0)
	l.Title = "Recent games"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{port: port, limit: limit, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port, limit := m.port, m.limit
	return func() tea.Msg {
		entries, err := port.History(context.Background(), limit)
		return LoadedMsg{Entries: entries, Err: err}
	}
}

// Restyle picks up the current theme.
func (m *Model) Restyle() {
	m.list.SetDelegate(newDelegate())
	m.list.Styles.Title = theme.Title
}

// Latest returns the newest entry, if any.
func (m Model) Latest() (statsdto.HistoryEntryOutput, bool) {
	if len(m.entries) == 0 {
		return statsdto.HistoryEntryOutput{}, false
	}
	return m.entries[0], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.entries = msg.Entries
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Down.Render("history: " + m.err.Error())
	}
	if len(m.entries) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("NO GAMES RECORDED"))
	}
	return m.list.View()
}

func newDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(theme.Current.Accent).BorderForeground(theme.Current.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(theme.Current.Subtext).BorderForeground(theme.Current.Accent)
	return d
}

func duration(e statsdto.HistoryEntryOutput) string {
	if !e.HasDuration {
		return "N/A"
	}
	return fmt.Sprintf("%.0fs", e.Duration.Seconds())
}
