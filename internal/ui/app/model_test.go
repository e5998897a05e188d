package app

import (
	"context"
	"strings"
	"testing"
	"time"

	chartdto "zetatrack/internal/modules/chart/dto"
	exportdto "zetatrack/internal/modules/export/dto"
	statsdto "zetatrack/internal/modules/stats/dto"
)

type fakeStats struct{}

func (fakeStats) Summary(context.Context) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{}, nil
}

func (fakeStats) History(context.Context, int) ([]statsdto.HistoryEntryOutput, error) {
	return nil, nil
}

type fakeChart struct{}

func (fakeChart) Terminal(context.Context, int, int, string, int) (chartdto.TerminalOutput, error) {
	return chartdto.TerminalOutput{Text: "chart"}, nil
}

type fakeExport struct{ paths []string }

func (f *fakeExport) Export(_ context.Context, path string) (exportdto.ExportOutput, error) {
	f.paths = append(f.paths, path)
	return exportdto.ExportOutput{Path: "out.csv", Rows: 3}, nil
}

type fakeThemes struct{ current string }

func (f *fakeThemes) Theme(context.Context) (string, error) { return f.current, nil }

func (f *fakeThemes) SetTheme(_ context.Context, theme string) (string, error) {
	f.current = theme
	return theme, nil
}

func (f *fakeThemes) Toggle(context.Context) (string, error) {
	if f.current == "dark" {
		f.current = "light"
	} else {
		f.current = "dark"
	}
	return f.current, nil
}

func newTestModel() (Model, *fakeExport, *fakeThemes) {
	exports := &fakeExport{}
	themes := &fakeThemes{current: "dark"}
	m := NewModel(fakeStats{}, fakeChart{}, exports, themes, Options{
		ChartWindow:   20,
		HistoryLimit:  10,
		Refresh:       time.Second,
		ToastDuration: time.Second,
	})
	return m, exports, themes
}

func TestToastShownWhenLedgerGrows(t *testing.T) {
	m, _, _ := newTestModel()

	next, _ := m.Update(summaryLoadedMsg{summary: statsdto.SummaryOutput{Count: 2}})
	m = next.(Model)
	if m.toast != "" {
		t.Fatalf("first load must not toast, got %q", m.toast)
	}

	next, cmd := m.Update(summaryLoadedMsg{
		summary: statsdto.SummaryOutput{Count: 3},
		latest:  statsdto.HistoryEntryOutput{Score: 42},
	})
	m = next.(Model)
	if m.toast != "Score 42 saved to tracker!" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
	if cmd == nil {
		t.Fatalf("expected expiry command")
	}

	next, _ = m.Update(toastExpiredMsg{id: m.toastID - 1})
	m = next.(Model)
	if m.toast == "" {
		t.Fatalf("stale expiry must not clear the toast")
	}
	next, _ = m.Update(toastExpiredMsg{id: m.toastID})
	m = next.(Model)
	if m.toast != "" {
		t.Fatalf("toast should clear, got %q", m.toast)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, exports, themes := newTestModel()

	next, _ := m.executePalette("view history")
	m = next.(Model)
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab")
	}

	_, cmd := m.executePalette("export /tmp/scores.csv")
	if cmd == nil {
		t.Fatalf("expected export command")
	}
	msg := cmd()
	exported, ok := msg.(exportedMsg)
	if !ok || exported.err != nil {
		t.Fatalf("unexpected export message %#v", msg)
	}
	if len(exports.paths) != 1 || exports.paths[0] != "/tmp/scores.csv" {
		t.Fatalf("unexpected export paths %v", exports.paths)
	}
	next, _ = m.Update(exported)
	m = next.(Model)
	if !strings.Contains(m.status, "exported 3 games") {
		t.Fatalf("unexpected status %q", m.status)
	}

	_, cmd = m.executePalette("theme light")
	changed, ok := cmd().(themeChangedMsg)
	if !ok || changed.theme != "light" || themes.current != "light" {
		t.Fatalf("unexpected theme change %#v", changed)
	}

	next, _ = m.executePalette("bogus")
	m = next.(Model)
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
