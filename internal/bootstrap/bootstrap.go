package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	chartinadapter "zetatrack/internal/modules/chart/adapter/in"
	chartoutadapter "zetatrack/internal/modules/chart/adapter/out"
	chartservice "zetatrack/internal/modules/chart/service"
	chartusecase "zetatrack/internal/modules/chart/usecase"
	detectorinadapter "zetatrack/internal/modules/detector/adapter/in"
	detectoroutadapter "zetatrack/internal/modules/detector/adapter/out"
	detectorservice "zetatrack/internal/modules/detector/service"
	detectorusecase "zetatrack/internal/modules/detector/usecase"
	exportinadapter "zetatrack/internal/modules/export/adapter/in"
	exportoutadapter "zetatrack/internal/modules/export/adapter/out"
	exportout "zetatrack/internal/modules/export/port/out"
	exportservice "zetatrack/internal/modules/export/service"
	exportusecase "zetatrack/internal/modules/export/usecase"
	ledgeroutadapter "zetatrack/internal/modules/ledger/adapter/out"
	ledgerservice "zetatrack/internal/modules/ledger/service"
	ledgerusecase "zetatrack/internal/modules/ledger/usecase"
	prefinadapter "zetatrack/internal/modules/preference/adapter/in"
	prefoutadapter "zetatrack/internal/modules/preference/adapter/out"
	prefservice "zetatrack/internal/modules/preference/service"
	prefusecase "zetatrack/internal/modules/preference/usecase"
	probeinadapter "zetatrack/internal/modules/probe/adapter/in"
	probeoutadapter "zetatrack/internal/modules/probe/adapter/out"
	probedomain "zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
	probeservice "zetatrack/internal/modules/probe/service"
	probeusecase "zetatrack/internal/modules/probe/usecase"
	statsinadapter "zetatrack/internal/modules/stats/adapter/in"
	statsoutadapter "zetatrack/internal/modules/stats/adapter/out"
	statsservice "zetatrack/internal/modules/stats/service"
	statsusecase "zetatrack/internal/modules/stats/usecase"
	"zetatrack/internal/platform/clock"
	"zetatrack/internal/platform/config"
	"zetatrack/internal/platform/metrics"
	uiapp "zetatrack/internal/ui/app"
)

// SurfaceOptions selects where the detector reads the game from. At most one
// source is used; Listen wins over Browser, Browser over URL, URL over File.
type SurfaceOptions struct {
	URL     string
	File    string
	Browser bool
	Listen  bool
}

type App struct {
	Config  config.Config
	Log     zerolog.Logger
	Metrics *metrics.Metrics

	ProbeCLI    probeinadapter.CLIHandler
	DetectorCLI detectorinadapter.CLIHandler
	StatsCLI    statsinadapter.CLIHandler
	ChartCLI    chartinadapter.CLIHandler
	ExportCLI   exportinadapter.CLIHandler
	ThemeCLI    prefinadapter.CLIHandler
	HTTP        *probeinadapter.HTTPHandler

	closers []io.Closer
}

// New wires every module against the configuration. A browser surface is
// started with ctx and lives until Close.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger, surfaceOpts SurfaceOptions) (*App, error) {
	clk := clock.SystemClock{}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	app := &App{Config: cfg, Log: log, Metrics: m}

	store, err := ledgeroutadapter.NewSQLiteKeyValueStore(cfg.DBPath, clk)
	if err != nil {
		return nil, fmt.Errorf("new ledger store: %w", err)
	}
	app.closers = append(app.closers, store)
	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(store), m, log.With().Str("module", "ledger").Logger())

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(clk, loc, statsoutadapter.NewLedgerRecordSource(ledgerUC)))

	prefUC := prefusecase.NewInteractor(prefservice.NewPreferenceService(prefoutadapter.NewFilePreferenceStore(cfg.PrefsPath)))

	chartUC := chartusecase.NewInteractor(
		chartservice.NewChartService(
			chartoutadapter.NewStatsSeriesSource(statsUC),
			chartoutadapter.NewPreferenceThemeSource(prefUC),
		),
		chartoutadapter.NewGoChartImageWriter(),
		chartoutadapter.NewTerminalCanvas(),
	)

	board := exportoutadapter.NewToastBoard()
	exportUC := exportusecase.NewInteractor(
		exportservice.NewExportService(clk, exportoutadapter.NewLedgerRecordSource(ledgerUC), exportoutadapter.NewFileCSVWriter(), exportservice.Options{
			Location:      loc,
			ToastDuration: cfg.ToastDuration,
			Board:         board,
			Toasters:      []exportout.Toaster{exportoutadapter.NewConsoleToaster(os.Stdout)},
		}),
		log.With().Str("module", "export").Logger(),
	)

	surface, sink, err := app.openSurface(ctx, cfg, surfaceOpts)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	decoder, err := app.openDecoder(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	probeUC := probeusecase.NewInteractor(probeservice.NewProbeService(clk, surface, decoder), sink, probeoutadapter.NewPluginHost())

	detectorUC := detectorusecase.NewInteractor(
		detectorservice.NewDetectorService(clk, detectoroutadapter.NewProbeSignalSource(probeUC)),
		ledgerUC,
		exportUC,
		m,
		log.With().Str("module", "detector").Logger(),
		detectorusecase.Options{
			PollInterval: cfg.PollInterval,
			Debounce:     cfg.ChangeDebounce,
			DrainTimeout: cfg.DrainTimeout,
			Tickers:      clock.NewSystemTicker,
		},
	)

	app.ProbeCLI = probeinadapter.NewCLIHandler(probeUC)
	app.DetectorCLI = detectorinadapter.NewCLIHandler(detectorUC)
	app.StatsCLI = statsinadapter.NewCLIHandler(statsUC)
	app.ChartCLI = chartinadapter.NewCLIHandler(chartUC)
	app.ExportCLI = exportinadapter.NewCLIHandler(exportUC)
	app.ThemeCLI = prefinadapter.NewCLIHandler(prefUC)
	app.HTTP = probeinadapter.NewHTTPHandler(probeUC, exportUC, m.Handler(), m, log.With().Str("module", "http").Logger())
	return app, nil
}

func (a *App) openSurface(ctx context.Context, cfg config.Config, opts SurfaceOptions) (probeout.Surface, probeout.SnapshotSink, error) {
	switch {
	case opts.Listen:
		push := probeoutadapter.NewPushSurface()
		return push, push, nil
	case opts.Browser:
		if opts.URL == "" {
			return nil, nil, fmt.Errorf("--browser needs --url")
		}
		browser := probeoutadapter.NewBrowserSurface(opts.URL, cfg.BrowserHeadless)
		if err := browser.Start(ctx); err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, browser)
		return browser, nil, nil
	case opts.URL != "":
		return probeoutadapter.NewHTTPSurface(opts.URL, cfg.HTTPTimeout), nil, nil
	case opts.File != "":
		return probeoutadapter.NewFileSurface(opts.File), nil, nil
	default:
		return nil, nil, nil
	}
}

func (a *App) openDecoder(cfg config.Config) (probeout.Decoder, error) {
	if cfg.PluginBinary != "" {
		decoder := probeoutadapter.NewPluginDecoder(cfg.PluginBinary, cfg.PluginSHA256)
		a.closers = append(a.closers, decoder)
		return decoder, nil
	}
	layout, err := probedomain.NewLayout(cfg.TimerPattern, cfg.ScorePattern, cfg.EndPhrases)
	if err != nil {
		return nil, fmt.Errorf("build layout: %w", err)
	}
	return probeoutadapter.NewLayoutDecoder(layout), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.StatsCLI, app.ChartCLI, app.ExportCLI, app.ThemeCLI, uiapp.Options{
		ChartWindow:   app.Config.ChartWindow,
		HistoryLimit:  app.Config.HistoryLimit,
		Refresh:       app.Config.RefreshInterval,
		ToastDuration: app.Config.ToastDuration,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
