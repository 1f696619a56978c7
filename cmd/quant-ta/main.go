// Package main is the entry point for the quant-ta streaming panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tathienbao/quant-ta/internal/alert"
	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/internal/metrics"
	"github.com/tathienbao/quant-ta/internal/observer"
	"github.com/tathienbao/quant-ta/internal/report"
	"github.com/tathienbao/quant-ta/internal/store"
	"github.com/tathienbao/quant-ta/internal/ui"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse command
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	case "stream":
		cmdStream(os.Args[2:])
	case "demo":
		cmdDemo(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Quant TA - Streaming Technical Analysis Panel

Usage:
  quant-ta <command> [options]

Commands:
  stream     Stream candles through the indicator panel
  demo       Run the panel over generated market data
  validate   Validate configuration file
  version    Show version information
  help       Show this help message

Examples:
  quant-ta stream --config config.yaml --ui
  quant-ta stream --config config.yaml --summary --json
  quant-ta demo --bars 500 --seed 42
  quant-ta validate --config config.yaml

Use "quant-ta <command> --help" for more information about a command.`)
}

func cmdVersion() {
	fmt.Printf("quant-ta version %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Building the panel surfaces indicator parameter errors.
	panel, err := observer.NewPanel(cfg.Panel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Alerts.Enabled {
		if _, err := alert.RulesFromConfig(cfg.Alerts.Rules); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Configuration is valid!")
	fmt.Printf("  Source:      %s (%s)\n", cfg.Source.Type, cfg.Source.Symbol)
	fmt.Printf("  Columns:     %s\n", strings.Join(panel.Columns(), ", "))
	if cfg.Alerts.Enabled {
		fmt.Printf("  Alert rules: %d\n", len(cfg.Alerts.Rules))
	}
	if cfg.Metrics.Enabled {
		fmt.Printf("  Metrics:     %s%s\n", cfg.Metrics.Addr(), cfg.Metrics.Path)
	}
	if cfg.Store.Enabled {
		fmt.Printf("  Store:       %s\n", cfg.Store.Path)
	}

	columns := make(map[string]bool, len(panel.Columns()))
	for _, c := range panel.Columns() {
		columns[c] = true
	}
	for _, r := range cfg.Alerts.Rules {
		if !columns[r.Column] {
			fmt.Printf("  Warning: alert rule references unknown column %q\n", r.Column)
		}
	}
}

func cmdStream(args []string) {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	showUI := fs.Bool("ui", false, "Render the live panel")
	summary := fs.Bool("summary", false, "Print an end-of-run summary")
	verbose := fs.Bool("verbose", false, "Verbose output")
	jsonLogs := fs.Bool("json", false, "JSON log output")
	fs.Parse(args)

	// Setup logging. The panel owns stdout, so logs go to stderr.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("quant-ta starting",
		"version", Version,
		"source", cfg.Source.Type,
		"symbol", cfg.Source.Symbol,
	)

	if err := runStream(ctx, cfg, *showUI, *summary, logger); err != nil {
		slog.Error("stream failed", "err", err)
		os.Exit(1)
	}

	slog.Info("quant-ta shutdown complete")
}

func cmdDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	bars := fs.Int("bars", 500, "Number of bars to generate")
	seed := fs.Int64("seed", 42, "Random seed")
	pace := fs.Float64("pace", 25, "Bars per second (0 = as fast as possible)")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg := demoConfig(*bars, *seed, *pace)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Demo config error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runStream(ctx, cfg, true, true, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Demo failed: %v\n", err)
		os.Exit(1)
	}
}

// demoConfig builds a self-contained configuration: a seeded synthetic
// feed through a representative panel, with RSI threshold alerts.
func demoConfig(bars int, seed int64, pace float64) *config.Config {
	return &config.Config{
		Source: config.SourceConfig{
			Type:           "synthetic",
			PaceBarsPerSec: pace,
			Synthetic: config.SyntheticConfig{
				Bars: bars,
				Seed: seed,
			},
		},
		Panel: config.PanelConfig{
			Indicators: []config.IndicatorConfig{
				{Type: "sma", Period: 20},
				{Type: "ema", Period: 12},
				{Type: "rsi"},
				{Type: "macd"},
				{Type: "bollinger", Period: 20},
				{Type: "atr", Period: 14},
				{Type: "vwap"},
			},
		},
		Alerts: config.AlertsConfig{
			Enabled: true,
			Rules: []config.RuleConfig{
				{Column: "rsi_14", Above: f64(0.7), Severity: "warning"},
				{Column: "rsi_14", Below: f64(0.3), Severity: "warning"},
			},
		},
	}
}

// runStream wires the feed, the panel, and every configured sink, then
// consumes snapshots until the feed ends or the context is cancelled.
func runStream(ctx context.Context, cfg *config.Config, showUI, summary bool, logger *slog.Logger) error {
	feed, err := observer.NewFeed(cfg.Source)
	if err != nil {
		return fmt.Errorf("create feed: %w", err)
	}
	defer func() { _ = feed.Close() }()

	panel, err := observer.NewPanel(cfg.Panel)
	if err != nil {
		return fmt.Errorf("build panel: %w", err)
	}

	runner := observer.NewRunner(feed, panel)
	recorder := metrics.NewRecorder()

	metrics.SetBuildInfo(Version, GitCommit, BuildTime)

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics, logger)
		metricsServer.RegisterHealthCheck("feed", func() metrics.Check {
			return metrics.Check{Status: "healthy", Message: feed.Name()}
		})
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	var engine *alert.Engine
	if cfg.Alerts.Enabled {
		rules, err := alert.RulesFromConfig(cfg.Alerts.Rules)
		if err != nil {
			return fmt.Errorf("build alert rules: %w", err)
		}
		notifier := alert.NewMulti(logger,
			alert.NewConsole(logger),
			&metricsNotifier{recorder: recorder},
		)
		engine = alert.NewEngine(notifier, rules)
	}

	var repo *store.SQLiteRepository
	var runID string
	if cfg.Store.Enabled {
		repo, err = store.NewSQLiteRepository(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = repo.Close() }()

		runID, err = repo.BeginRun(ctx, cfg.Source.Symbol, feed.Name(), time.Now())
		if err != nil {
			return fmt.Errorf("begin run: %w", err)
		}
	}

	var collector *report.Collector
	if summary {
		collector = report.NewCollector()
	}

	snapshots, err := runner.Run(ctx, cfg.Source.Symbol)
	if err != nil {
		recorder.RecordFeedError(feed.Name())
		return fmt.Errorf("start stream: %w", err)
	}

	logger.Info("stream started",
		"source", feed.Name(),
		"symbol", cfg.Source.Symbol,
		"columns", len(panel.Columns()),
	)

	var live *ui.LivePanel
	if showUI {
		live = ui.NewLivePanel(os.Stdout)
		live.Start()
	}

	// Store writes outlive a cancelled stream so the tail of the run is
	// not lost on shutdown.
	saveCtx := context.Background()

	timer := metrics.NewTimer()
	var bars int64

	for snap := range snapshots {
		bars++

		recorder.RecordCandle(snap.Symbol, feed.Name())
		recorder.RecordAdvance(snap.Elapsed)
		for _, v := range snap.Values {
			recorder.RecordColumn(v.Column, v.Value, v.Ready)
		}

		if live != nil {
			live.Update(snap)
		}
		if collector != nil {
			collector.Observe(snap)
		}
		if engine != nil {
			if err := engine.Observe(ctx, snap); err != nil {
				logger.Warn("alert delivery failed", "err", err)
			}
		}
		if repo != nil {
			if err := repo.SaveSnapshot(saveCtx, runID, snap); err != nil {
				logger.Warn("save snapshot failed", "err", err)
			} else {
				recorder.RecordSnapshotStored()
			}
		}
	}

	if live != nil {
		live.Stop()
	}

	if repo != nil {
		if err := repo.FinishRun(saveCtx, runID, time.Now(), bars); err != nil {
			logger.Warn("finish run failed", "err", err)
		} else {
			logger.Info("run persisted", "run_id", runID, "bars", bars)
		}
	}

	if engine != nil {
		if active := engine.ActiveBreaches(); len(active) > 0 {
			logger.Info("breaches still active at shutdown", "columns", active)
		}
	}

	logger.Info("stream finished", "bars", bars, "took", timer.Elapsed())

	if collector != nil {
		fmt.Println()
		fmt.Print(collector.Summary().Format())
	}

	return nil
}

// metricsNotifier counts delivered alerts by severity.
type metricsNotifier struct {
	recorder *metrics.Recorder
}

func (m *metricsNotifier) Name() string { return "metrics" }

func (m *metricsNotifier) Notify(_ context.Context, severity alert.Severity, _ string, _ ...any) error {
	m.recorder.RecordAlert(severity.String())
	return nil
}

func f64(v float64) *float64 {
	return &v
}
