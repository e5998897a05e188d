package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "zetatrack"

type Config struct {
	DataDir   string `yaml:"-" ignored:"true"`
	DBPath    string `yaml:"db_path" envconfig:"DB_PATH"`
	PrefsPath string `yaml:"prefs_path" envconfig:"PREFS_PATH"`
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	LogPath   string `yaml:"log_path" envconfig:"LOG_PATH"`
	TimeZone  string `yaml:"time_zone" envconfig:"TIME_ZONE"`

	PollInterval    time.Duration `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`
	ChangeDebounce  time.Duration `yaml:"change_debounce" envconfig:"CHANGE_DEBOUNCE"`
	DrainTimeout    time.Duration `yaml:"drain_timeout" envconfig:"DRAIN_TIMEOUT"`
	ToastDuration   time.Duration `yaml:"toast_duration" envconfig:"TOAST_DURATION"`
	RefreshInterval time.Duration `yaml:"refresh_interval" envconfig:"REFRESH_INTERVAL"`
	HTTPTimeout     time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	TimerPattern string   `yaml:"timer_pattern" envconfig:"TIMER_PATTERN"`
	ScorePattern string   `yaml:"score_pattern" envconfig:"SCORE_PATTERN"`
	EndPhrases   []string `yaml:"end_phrases" envconfig:"END_PHRASES"`

	ChartWindow  int `yaml:"chart_window" envconfig:"CHART_WINDOW"`
	ChartWidth   int `yaml:"chart_width" envconfig:"CHART_WIDTH"`
	ChartHeight  int `yaml:"chart_height" envconfig:"CHART_HEIGHT"`
	HistoryLimit int `yaml:"history_limit" envconfig:"HISTORY_LIMIT"`

	ListenAddr      string `yaml:"listen_addr" envconfig:"LISTEN_ADDR"`
	PluginBinary    string `yaml:"plugin_binary" envconfig:"PLUGIN_BINARY"`
	PluginSHA256    string `yaml:"plugin_sha256" envconfig:"PLUGIN_SHA256"`
	BrowserHeadless bool   `yaml:"browser_headless" envconfig:"BROWSER_HEADLESS"`
}

// New returns the configuration for dataDir with file and environment overrides applied.
func New(dataDir string) (Config, error) {
	return Load(dataDir, "")
}

// Load builds the configuration in three layers: built-in defaults, the YAML
// file at configPath (or <dataDir>/config.yaml when it exists) and
// ZETATRACK_* environment variables.
func Load(dataDir, configPath string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := defaults(dataDir)

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(dataDir, "config.yaml")
	}
	payload, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	cfg.DBPath = resolve(dataDir, cfg.DBPath)
	cfg.PrefsPath = resolve(dataDir, cfg.PrefsPath)
	cfg.LogPath = resolve(dataDir, cfg.LogPath)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration rooted at dataDir.
func Defaults(dataDir string) Config {
	cfg := defaults(dataDir)
	cfg.DBPath = resolve(dataDir, cfg.DBPath)
	cfg.PrefsPath = resolve(dataDir, cfg.PrefsPath)
	cfg.LogPath = resolve(dataDir, cfg.LogPath)
	return cfg
}

func defaults(dataDir string) Config {
	return Config{
		DataDir:         dataDir,
		DBPath:          "zetatrack.db",
		PrefsPath:       "prefs.json",
		LogLevel:        "info",
		LogFormat:       "json",
		LogPath:         "zetatrack.log",
		TimeZone:        "Local",
		PollInterval:    time.Second,
		ChangeDebounce:  100 * time.Millisecond,
		DrainTimeout:    5 * time.Second,
		ToastDuration:   3 * time.Second,
		RefreshInterval: 2 * time.Second,
		HTTPTimeout:     5 * time.Second,
		TimerPattern:    `Seconds left:\s*(\d+)`,
		ScorePattern:    `Score:\s*(\d+)`,
		EndPhrases:      []string{"Time's up!", "Game over", "Final score", "Well done!"},
		ChartWindow:     20,
		ChartWidth:      400,
		ChartHeight:     150,
		HistoryLimit:    10,
		ListenAddr:      "127.0.0.1:7878",
	}
}

func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.ChangeDebounce < 0 {
		return fmt.Errorf("change debounce must not be negative")
	}
	if c.ChartWindow <= 0 {
		return fmt.Errorf("chart window must be positive")
	}
	if c.ChartWidth <= 40 || c.ChartHeight <= 40 {
		return fmt.Errorf("chart size must exceed the 20px padding on both sides")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive")
	}
	if _, err := regexp.Compile(c.TimerPattern); err != nil {
		return fmt.Errorf("timer pattern: %w", err)
	}
	if _, err := regexp.Compile(c.ScorePattern); err != nil {
		return fmt.Errorf("score pattern: %w", err)
	}
	if len(c.EndPhrases) == 0 {
		return fmt.Errorf("at least one end phrase is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone; calendar dates are derived in this zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func resolve(dataDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}
