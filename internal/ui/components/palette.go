package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"zetatrack/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"export [path]",
	"theme <dark|light>",
	"view <chart|history>",
	"refresh",
}

const recallLimit = 20

// Palette is the ":" command line. Up and down walk previously submitted
// commands; tab completes the verb when exactly one hint matches.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	recall []string
	cursor int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "export, theme, view, refresh"
	ti.Prompt = ": "
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.recall)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch key.String() {
	case "esc":
		p.close()
		return p, func() tea.Msg { return PaletteCancelMsg{} }
	case "enter":
		val := strings.TrimSpace(p.input.Value())
		p.remember(val)
		p.close()
		return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
	case "up":
		if p.cursor > 0 {
			p.cursor--
			p.input.SetValue(p.recall[p.cursor])
			p.input.CursorEnd()
		}
		return p, nil
	case "down":
		if p.cursor < len(p.recall) {
			p.cursor++
		}
		if p.cursor == len(p.recall) {
			p.input.SetValue("")
		} else {
			p.input.SetValue(p.recall[p.cursor])
		}
		p.input.CursorEnd()
		return p, nil
	case "tab":
		if matches := matchHints(p.input.Value()); len(matches) == 1 {
			p.input.SetValue(verb(matches[0]) + " ")
			p.input.CursorEnd()
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(command string) {
	if command == "" {
		return
	}
	if n := len(p.recall); n > 0 && p.recall[n-1] == command {
		return
	}
	p.recall = append(p.recall, command)
	if len(p.recall) > recallLimit {
		p.recall = p.recall[len(p.recall)-recallLimit:]
	}
}

func verb(hint string) string {
	return strings.Fields(hint)[0]
}

// matchHints keeps hints whose verb starts with the typed verb; once a full
// verb and an argument are typed the hint for that verb stays visible.
func matchHints(typed string) []string {
	fields := strings.Fields(strings.ToLower(typed))
	if len(fields) == 0 {
		return paletteHints
	}
	var out []string
	for _, h := range paletteHints {
		v := verb(h)
		if strings.HasPrefix(v, fields[0]) || (len(fields) > 1 && v == fields[0]) {
			out = append(out, h)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if matches := matchHints(p.input.Value()); len(matches) > 0 {
		sb.WriteString("\n")
		for _, h := range matches {
			sb.WriteString(theme.Muted.Render("  "+h) + "\n")
		}
	} else {
		sb.WriteString("\n" + theme.Down.Render("  no such command") + "\n")
	}
	if n := len(p.recall); n > 0 {
		sb.WriteString(theme.Muted.Render("\n  ↑/↓ recall, tab complete"))
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Palette.Width(w - 2).Render(sb.String())
}
