// Package app wires the processing pipeline together: batch concatenation,
// deduplication, enrichment, and the assembly of all aggregation views into
// one immutable result.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/replay/internal/domain/dedupe"
	"github.com/okian/replay/internal/domain/enrich"
	"github.com/okian/replay/internal/domain/habits"
	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/stats"
	"github.com/okian/replay/internal/domain/types"
	"github.com/okian/replay/pkg/logger"
	"github.com/okian/replay/pkg/metrics"
)

// Table is the fully materialized event table of one run: the surviving raw
// plays and their enriched counterparts, in the same order, plus processing
// counters. A Table is never mutated after Process returns it.
type Table struct {
	Plays  []model.Play
	Events []model.Event
	Stats  model.ProcessingStats
}

// Service runs the analysis pipeline. Each call owns its own event table;
// there is no shared mutable state across runs.
type Service struct {
	topArtists int
	topTracks  int
	topAlbums  int
	log        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTopArtists overrides the artist ranking size.
func WithTopArtists(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topArtists = n
		}
	}
}

// WithTopTracks overrides the track ranking size.
func WithTopTracks(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topTracks = n
		}
	}
}

// WithTopAlbums overrides the album ranking size.
func WithTopAlbums(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topAlbums = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		topArtists: stats.DefaultTopArtists,
		topTracks:  stats.DefaultTopTracks,
		topAlbums:  stats.DefaultTopAlbums,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("pipeline")
	}
	return s
}

// Process concatenates the batches in order, removes duplicates, and
// enriches the survivors. The passed counters are carried into the returned
// table's stats. Supplemental batches always trigger this full recompute;
// there is no incremental path.
func (s *Service) Process(ctx context.Context, proc model.ProcessingStats, batches ...[]model.Play) (*Table, error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	all := make([]model.Play, 0, total)
	for _, b := range batches {
		all = append(all, b...)
	}

	plays, removed := dedupe.Deduplicate(ctx, all)
	metrics.RecordDuplicatesRemoved(removed)
	if removed > 0 {
		s.log.Info(ctx, "removed duplicate plays", logger.Int("removed", removed))
	}

	events, err := enrich.Events(ctx, plays)
	if err != nil {
		metrics.RecordEnrichFailure()
		return nil, err
	}

	proc.DuplicatesRemoved = removed
	proc.FinalEntries = len(events)
	fillTableStats(&proc, events)
	metrics.UpdateEventTableSize(len(events))

	return &Table{Plays: plays, Events: events, Stats: proc}, nil
}

// Merge folds a supplemental batch (e.g. an API gap fill) into an existing
// table by concatenation and a full reprocess of the merged input.
func (s *Service) Merge(ctx context.Context, t *Table, supplemental []model.Play) (*Table, error) {
	proc := t.Stats
	proc.APIEntriesAdded = len(supplemental)
	metrics.RecordAPIPlaysFetched(len(supplemental))
	return s.Process(ctx, proc, t.Plays, supplemental)
}

// Analyze computes every aggregation view over the table and assembles the
// immutable result. The result is a pure function of the table: two calls
// over identical tables produce identical results.
func (s *Service) Analyze(ctx context.Context, t *Table) (types.Results, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.log.Info(ctx, "analyzing listening history",
		logger.String("run_id", runID),
		logger.Int("events", len(t.Events)))

	overall, err := stats.Overall(t.Events)
	if err != nil {
		return types.Results{}, err
	}

	results := types.Results{
		Overall:    overall,
		TopArtists: stats.TopArtists(t.Events, s.topArtists),
		TopTracks:  stats.TopTracks(t.Events, s.topTracks),
		TopAlbums:  stats.TopAlbums(t.Events, s.topAlbums),
		Temporal:   stats.Temporal(t.Events),
		Advanced:   habits.Metrics(t.Events),
	}

	metrics.RecordRun()
	metrics.RecordAnalysisDuration(time.Since(start).Seconds())
	s.log.Info(ctx, "analysis complete",
		logger.String("run_id", runID),
		logger.Float64("total_hours", results.Overall.TotalHours))
	return results, nil
}

// fillTableStats derives the summary counters the processing report shows.
func fillTableStats(proc *model.ProcessingStats, events []model.Event) {
	if len(events) == 0 {
		return
	}

	minTS, maxTS := events[0].Timestamp, events[0].Timestamp
	artists := make(map[string]struct{})
	tracks := make(map[string]struct{})
	albums := make(map[string]struct{})
	for _, e := range events {
		if e.Timestamp.Before(minTS) {
			minTS = e.Timestamp
		}
		if e.Timestamp.After(maxTS) {
			maxTS = e.Timestamp
		}
		if e.Artist != "" {
			artists[e.Artist] = struct{}{}
		}
		if e.Track != "" {
			tracks[e.Track] = struct{}{}
		}
		if e.Album != "" {
			albums[e.Album] = struct{}{}
		}
	}
	proc.DateStart = minTS.Format("2006-01-02")
	proc.DateEnd = maxTS.Format("2006-01-02")
	proc.UniqueArtists = len(artists)
	proc.UniqueTracks = len(tracks)
	proc.UniqueAlbums = len(albums)
}
