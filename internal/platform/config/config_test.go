package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zetatrack/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "zetatrack.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.PrefsPath != filepath.Join(dir, "prefs.json") {
		t.Fatalf("unexpected prefs path: %s", cfg.PrefsPath)
	}
	if cfg.PollInterval != time.Second || cfg.ToastDuration != 3*time.Second {
		t.Fatalf("unexpected intervals: poll=%s toast=%s", cfg.PollInterval, cfg.ToastDuration)
	}
	if cfg.ChartWindow != 20 || cfg.HistoryLimit != 10 {
		t.Fatalf("unexpected windows: chart=%d history=%d", cfg.ChartWindow, cfg.HistoryLimit)
	}
	if len(cfg.EndPhrases) != 4 {
		t.Fatalf("expected 4 end phrases, got %v", cfg.EndPhrases)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	body := strings.Join([]string{
		"poll_interval: 250ms",
		"chart_window: 30",
		"db_path: /tmp/elsewhere.db",
		"end_phrases:",
		"  - Done!",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("poll interval not applied: %s", cfg.PollInterval)
	}
	if cfg.ChartWindow != 30 {
		t.Fatalf("chart window not applied: %d", cfg.ChartWindow)
	}
	if cfg.DBPath != "/tmp/elsewhere.db" {
		t.Fatalf("absolute db path rewritten: %s", cfg.DBPath)
	}
	if len(cfg.EndPhrases) != 1 || cfg.EndPhrases[0] != "Done!" {
		t.Fatalf("end phrases not applied: %v", cfg.EndPhrases)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("history_limit: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ZETATRACK_HISTORY_LIMIT", "7")
	t.Setenv("ZETATRACK_TIME_ZONE", "UTC")
	cfg, err := config.Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryLimit != 7 {
		t.Fatalf("env did not win: %d", cfg.HistoryLimit)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("unexpected location %v err=%v", loc, err)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if _, err := config.Load(dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing config")
	}
}

func TestLoadRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.Load("", ""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*config.Config){
		"poll":     func(c *config.Config) { c.PollInterval = 0 },
		"debounce": func(c *config.Config) { c.ChangeDebounce = -time.Millisecond },
		"window":   func(c *config.Config) { c.ChartWindow = 0 },
		"size":     func(c *config.Config) { c.ChartWidth = 40 },
		"history":  func(c *config.Config) { c.HistoryLimit = 0 },
		"timer":    func(c *config.Config) { c.TimerPattern = "(" },
		"score":    func(c *config.Config) { c.ScorePattern = "[" },
		"phrases":  func(c *config.Config) { c.EndPhrases = nil },
		"zone":     func(c *config.Config) { c.TimeZone = "Nowhere/Invalid" },
	}
	for name, mutate := range cases {
		cfg := config.Defaults(t.TempDir())
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
