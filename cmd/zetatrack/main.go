package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"zetatrack/internal/bootstrap"
	"zetatrack/internal/platform/config"
	"zetatrack/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir    string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{dataDir: defaultDataDir()}

	root := &cobra.Command{
		Use:           "zetatrack",
		Short:         "Zetamac score tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", opts.dataDir, "directory holding the ledger, preferences and logs")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newProbeCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newChartCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newThemeCmd(opts))
	root.AddCommand(newPluginCmd(opts))
	root.AddCommand(newTUICmd(opts))
	return root
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".zetatrack"
	}
	return filepath.Join(base, "zetatrack")
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.dataDir, opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, nil
}

func loadApp(ctx context.Context, opts *rootOptions, logOut io.Writer, surface bootstrap.SurfaceOptions) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, log, surface)
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var surface bootstrap.SurfaceOptions
	var addr string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Watch the game and record every finished session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !surface.Listen && surface.URL == "" && surface.File == "" {
				return fmt.Errorf("one of --url, --file or --listen is required")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := loadApp(ctx, opts, os.Stderr, surface)
			if err != nil {
				return err
			}
			defer app.Close()

			if addr == "" {
				addr = app.Config.ListenAddr
			}
			group, groupCtx := errgroup.WithContext(ctx)
			if surface.Listen {
				group.Go(func() error { return app.HTTP.Serve(groupCtx, addr) })
			}
			group.Go(func() error { return app.DetectorCLI.Watch(groupCtx) })
			return group.Wait()
		},
	}
	watch.Flags().StringVar(&surface.URL, "url", "", "game page URL")
	watch.Flags().StringVar(&surface.File, "file", "", "read the game page from a local HTML file")
	watch.Flags().BoolVar(&surface.Browser, "browser", false, "drive a Chrome instance at --url")
	watch.Flags().BoolVar(&surface.Listen, "listen", false, "accept page snapshots over HTTP")
	watch.Flags().StringVar(&addr, "addr", "", "listen address for --listen (default from config)")
	return watch
}

func newProbeCmd(opts *rootOptions) *cobra.Command {
	var surface bootstrap.SurfaceOptions
	probe := &cobra.Command{
		Use:   "probe",
		Short: "Read the game page once and print the extracted signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if surface.URL == "" && surface.File == "" {
				return fmt.Errorf("--url or --file is required")
			}
			app, err := loadApp(cmd.Context(), opts, os.Stderr, surface)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProbeCLI.Observe(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.HasTimer {
				_, _ = fmt.Fprintf(w, "seconds_left=%d\n", out.SecondsLeft)
			} else {
				_, _ = fmt.Fprintln(w, "seconds_left=absent")
			}
			if out.HasScore {
				_, _ = fmt.Fprintf(w, "score=%d\n", out.Score)
			} else {
				_, _ = fmt.Fprintln(w, "score=absent")
			}
			_, _ = fmt.Fprintf(w, "ended=%t", out.Ended)
			if out.EndPhrase != "" {
				_, _ = fmt.Fprintf(w, " phrase=%q", out.EndPhrase)
			}
			_, _ = fmt.Fprintln(w)
			return nil
		},
	}
	probe.Flags().StringVar(&surface.URL, "url", "", "game page URL")
	probe.Flags().StringVar(&surface.File, "file", "", "local HTML file")
	return probe
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StatsCLI.Summary(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total=%d best=%d average=%d today=%d\n", out.Count, out.Best, out.Average, out.TodayCount)
			if out.Malformed > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skipped %d unreadable records\n", out.Malformed)
			}
			return nil
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List the most recent games, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			if limit <= 0 {
				limit = app.Config.HistoryLimit
			}
			entries, err := app.StatsCLI.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "NO GAMES RECORDED")
				return nil
			}
			for _, e := range entries {
				duration := "N/A"
				if e.HasDuration {
					duration = fmt.Sprintf("%ds", int(e.Duration.Round(time.Second)/time.Second))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", e.Score, trendMark(e.Trend), e.EndedAt.Format("02/01/2006 15:04"), duration)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 0, "number of games to show (default from config)")
	return history
}

func trendMark(trend string) string {
	switch trend {
	case "up":
		return "▲"
	case "down":
		return "▼"
	case "neutral":
		return "●"
	default:
		return " "
	}
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var (
		out           string
		width, height int
		theme         string
		window        int
		columns, rows int
	)
	chart := &cobra.Command{
		Use:   "chart",
		Short: "Plot recent scores to an image or the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			if window <= 0 {
				window = app.Config.ChartWindow
			}
			if out == "" {
				res, err := app.ChartCLI.Terminal(cmd.Context(), columns, rows, theme, window)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
				return nil
			}
			if width <= 0 {
				width = app.Config.ChartWidth
			}
			if height <= 0 {
				height = app.Config.ChartHeight
			}
			res, err := app.ChartCLI.Export(cmd.Context(), out, width, height, theme, window)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %s theme, %d points)\n", res.Path, res.Format, res.Theme, res.Points)
			return nil
		},
	}
	chart.Flags().StringVar(&out, "out", "", "image path ending in .png or .svg; omit to draw in the terminal")
	chart.Flags().IntVar(&width, "width", 0, "image width in pixels")
	chart.Flags().IntVar(&height, "height", 0, "image height in pixels")
	chart.Flags().StringVar(&theme, "theme", "", "dark or light (default: saved preference)")
	chart.Flags().IntVar(&window, "window", 0, "number of recent games to plot")
	chart.Flags().IntVar(&columns, "columns", 60, "terminal chart width in cells")
	chart.Flags().IntVar(&rows, "rows", 12, "terminal chart height in cells")
	return chart
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export every recorded game to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			res, err := app.ExportCLI.Export(cmd.Context(), out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d games to %s\n", res.Rows, res.Path)
			return nil
		},
	}
	export.Flags().StringVar(&out, "out", "", "file or directory (default zetatrack-YYYY-MM-DD.csv)")
	return export
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	theme := &cobra.Command{Use: "theme", Short: "Show or change the chart theme"}
	run := func(fn func(context.Context, *bootstrap.App, []string) (string, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			name, err := fn(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		}
	}
	theme.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved theme",
		RunE: run(func(ctx context.Context, app *bootstrap.App, _ []string) (string, error) {
			return app.ThemeCLI.Theme(ctx)
		}),
	})
	theme.AddCommand(&cobra.Command{
		Use:   "set <dark|light>",
		Short: "Save a theme",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, app *bootstrap.App, args []string) (string, error) {
			return app.ThemeCLI.SetTheme(ctx, args[0])
		}),
	})
	theme.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		RunE: run(func(ctx context.Context, app *bootstrap.App, _ []string) (string, error) {
			return app.ThemeCLI.Toggle(ctx)
		}),
	})
	return theme
}

func newPluginCmd(opts *rootOptions) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Decoder plugin operations"}

	var binary, checksum string
	check := &cobra.Command{
		Use:   "check --binary <path>",
		Short: "Verify a decoder plugin checksum and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(binary) == "" {
				return fmt.Errorf("--binary is required")
			}
			app, err := loadApp(cmd.Context(), opts, os.Stderr, bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProbeCLI.CheckPlugin(cmd.Context(), binary, checksum)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s layout=%s\n", out.Name, out.Version, out.Layout)
			return nil
		},
	}
	check.Flags().StringVar(&binary, "binary", "", "plugin executable")
	check.Flags().StringVar(&checksum, "sha256", "", "expected sha256 of the executable")
	plugin.AddCommand(check)
	return plugin
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logFile, err := logging.OpenFile(cfg.LogPath)
			if err != nil {
				return err
			}
			defer logFile.Close()
			log, err := logging.New(logFile, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cmd.Context(), cfg, log.With().Str("mode", "tui").Logger(), bootstrap.SurfaceOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}
