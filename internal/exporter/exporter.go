// Package exporter writes processed history and analysis results to disk.
//
// History exports re-run the identity-key dedup and sort rows by the raw
// timestamp string, so an exported file is itself a valid, clean input
// batch for a later run.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/okian/replay/internal/domain/dedupe"
	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
	"github.com/okian/replay/pkg/metrics"
)

const exportFilePerm = 0o600

// csvHeader is the column order of CSV exports, matching the JSON schema.
var csvHeader = []string{
	"ts",
	"spotify_track_uri",
	"ms_played",
	"master_metadata_track_name",
	"master_metadata_album_artist_name",
	"master_metadata_album_album_name",
	"platform",
	"conn_country",
	"reason_start",
	"reason_end",
	"shuffle",
	"skipped",
}

// HistoryJSON exports plays in the original export schema, deduplicated and
// sorted by timestamp. It returns a human-readable summary of what was
// written.
func HistoryJSON(ctx context.Context, plays []model.Play, path string) (string, error) {
	rows, _ := dedupe.Deduplicate(ctx, plays)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TS < rows[j].TS })

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := os.WriteFile(path, data, exportFilePerm); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}

	metrics.RecordExport("json")
	return fmt.Sprintf("Exported %d entries to %s (%s)", len(rows), path, humanSize(int64(len(data)))), nil
}

// HistoryCSV exports plays as CSV, deduplicated and sorted by timestamp.
func HistoryCSV(ctx context.Context, plays []model.Play, path string) (string, error) {
	rows, _ := dedupe.Deduplicate(ctx, plays)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TS < rows[j].TS })

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, exportFilePerm)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer f.Close() //nolint:errcheck // close error surfaced by Flush below

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	for _, p := range rows {
		record := []string{
			p.TS,
			p.TrackURI,
			strconv.FormatInt(p.MsPlayed, 10),
			p.Track,
			p.Artist,
			p.Album,
			strDeref(p.Platform),
			strDeref(p.ConnCountry),
			strDeref(p.ReasonStart),
			strDeref(p.ReasonEnd),
			boolDeref(p.Shuffle),
			boolDeref(p.Skipped),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}

	metrics.RecordExport("csv")
	return fmt.Sprintf("Exported %d entries to %s (%s)", len(rows), path, humanSize(info.Size())), nil
}

// AnalysisJSON exports the assembled analysis results.
func AnalysisJSON(results types.Results, path string) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := os.WriteFile(path, data, exportFilePerm); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}

	metrics.RecordExport("json")
	return fmt.Sprintf("Exported analysis to %s (%s)", path, humanSize(int64(len(data)))), nil
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolDeref(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// humanSize renders a byte count with a binary unit suffix.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
