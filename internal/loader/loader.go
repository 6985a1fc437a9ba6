// Package loader discovers and reads listening-history export files.
//
// A history directory holds one or more JSON files, each an array of raw
// plays. Files are loaded in sorted name order so batch order, and therefore
// duplicate survivorship, is reproducible across runs.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/pkg/logger"
	"github.com/okian/replay/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Discover finds all JSON files in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirNotFound, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadFile reads a single history file and collects basic per-file stats.
// Unparsable timestamps are skipped in the stat's date range; the pipeline's
// enrichment pass is where bad timestamps are rejected.
func LoadFile(path string) ([]model.Play, model.FileStat, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.FileStat{}, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	var plays []model.Play
	if err := json.Unmarshal(raw, &plays); err != nil {
		return nil, model.FileStat{}, fmt.Errorf("%w: %s: %w", ErrDecodeFile, path, err)
	}

	stat := model.FileStat{
		Name:      filepath.Base(path),
		SizeBytes: int64(len(raw)),
		Entries:   len(plays),
		DateRange: "N/A",
	}

	var earliest, latest time.Time
	tracks := make(map[string]struct{})
	artists := make(map[string]struct{})
	for _, p := range plays {
		if ts, err := time.Parse(time.RFC3339Nano, p.TS); err == nil {
			ts = ts.UTC()
			if earliest.IsZero() || ts.Before(earliest) {
				earliest = ts
			}
			if latest.IsZero() || ts.After(latest) {
				latest = ts
			}
		}
		if p.Track != "" {
			tracks[p.Track] = struct{}{}
		}
		if p.Artist != "" {
			artists[p.Artist] = struct{}{}
		}
	}
	if !earliest.IsZero() {
		stat.DateRange = earliest.Format(dateLayout) + " to " + latest.Format(dateLayout)
	}
	stat.UniqueTracks = len(tracks)
	stat.UniqueArtists = len(artists)

	return plays, stat, nil
}

// LoadAll loads every file in order and returns the combined plays, per-file
// stats, and running processing counters.
func LoadAll(ctx context.Context, paths []string) ([]model.Play, []model.FileStat, model.ProcessingStats, error) {
	log := logger.Named("loader")
	start := time.Now()

	var (
		all   []model.Play
		stats []model.FileStat
		proc  model.ProcessingStats
	)
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, nil, proc, ctx.Err()
		default:
		}

		plays, stat, err := LoadFile(path)
		if err != nil {
			return nil, nil, proc, err
		}
		all = append(all, plays...)
		stats = append(stats, stat)
		proc.FilesProcessed++
		proc.TotalEntries += len(plays)

		metrics.RecordFileLoaded()
		metrics.RecordPlaysIngested(len(plays))
		log.Debug(ctx, "loaded history file",
			logger.String("file", stat.Name),
			logger.Int("entries", stat.Entries))
	}

	metrics.RecordLoadDuration(time.Since(start).Seconds())
	log.Info(ctx, "loaded history files",
		logger.Int("files", proc.FilesProcessed),
		logger.Int("entries", proc.TotalEntries))
	return all, stats, proc, nil
}
