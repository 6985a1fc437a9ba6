package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/replay/internal/app"
	"github.com/okian/replay/internal/config"
	"github.com/okian/replay/internal/exporter"
	"github.com/okian/replay/internal/loader"
	"github.com/okian/replay/internal/report"
	"github.com/okian/replay/internal/spotify"
	"github.com/okian/replay/pkg/logger"
	"github.com/okian/replay/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env), then let flags
	// override the per-invocation knobs.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var (
		dir          = flag.String("dir", cfg.DataDir, "Directory containing history JSON files")
		exportFormat = flag.String("export", "", "Export instead of rendering: json or csv")
		noAPI        = flag.Bool("no-api", false, "Skip Spotify API gap filling")
		metricsAddr  = flag.String("metrics-addr", cfg.MetricsAddr, "Expose Prometheus metrics on this address, e.g. :9090")
	)
	flag.Parse()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *metricsAddr != "" {
		go serveMetrics(ctx, *metricsAddr)
	}

	if err := run(ctx, cfg, *dir, *exportFormat, *noAPI); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir, exportFormat string, noAPI bool) error {
	log := logger.Named("main")

	paths, err := loader.Discover(dir)
	if err != nil {
		return err
	}

	plays, _, proc, err := loader.LoadAll(ctx, paths)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithTopArtists(cfg.TopArtists),
		app.WithTopTracks(cfg.TopTracks),
		app.WithTopAlbums(cfg.TopAlbums),
	)

	table, err := svc.Process(ctx, proc, plays)
	if err != nil {
		return err
	}

	if !noAPI && cfg.SpotifyToken != "" && len(table.Events) > 0 {
		table = fillGap(ctx, cfg, svc, table)
	}

	results, err := svc.Analyze(ctx, table)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "json":
		msg, err := exporter.HistoryJSON(ctx, table.Plays, filepath.Join(cfg.ExportDir, "history_full.json"))
		if err != nil {
			return err
		}
		log.Info(ctx, msg)
	case "csv":
		msg, err := exporter.HistoryCSV(ctx, table.Plays, filepath.Join(cfg.ExportDir, "history_full.csv"))
		if err != nil {
			return err
		}
		log.Info(ctx, msg)
	default:
		return report.Write(os.Stdout, table.Stats, results)
	}

	msg, err := exporter.AnalysisJSON(results, filepath.Join(cfg.ExportDir, "analysis.json"))
	if err != nil {
		return err
	}
	log.Info(ctx, msg)
	return nil
}

// fillGap fetches plays newer than the table's last event and merges them.
// API failures degrade to the file-only table rather than aborting the run.
func fillGap(ctx context.Context, cfg *config.Config, svc *app.Service, table *app.Table) *app.Table {
	log := logger.Named("main")

	last := table.Events[0].Timestamp
	for _, e := range table.Events[1:] {
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}

	client := spotify.New(cfg.SpotifyToken, spotify.WithBaseURL(cfg.SpotifyAPIURL))
	recent, err := client.RecentlyPlayed(ctx, last)
	if err != nil {
		log.Warn(ctx, "gap fill failed; continuing with file data", logger.Error(err))
		return table
	}
	if len(recent) == 0 {
		return table
	}

	merged, err := svc.Merge(ctx, table, recent)
	if err != nil {
		log.Warn(ctx, "merge of API plays failed; continuing with file data", logger.Error(err))
		return table
	}
	return merged
}

func serveMetrics(ctx context.Context, addr string) {
	log := logger.Named("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}
