// Package stats computes the five aggregation views over an enriched event
// table: overall summary, artist/track/album rankings, and temporal
// distributions.
//
// Every view is an explicit grouping step (composite key -> accumulator)
// followed by a finalize step per group, so the tie-break and rounding rules
// stay auditable. All views are pure functions of the event table.
package stats

import (
	"math"
	"time"
)

// Default ranking sizes, overridable per call.
const (
	DefaultTopArtists = 15
	DefaultTopTracks  = 15
	DefaultTopAlbums  = 10
)

const (
	msPerSecond = 1_000
	msPerMinute = 60_000
	msPerHour   = 3_600_000

	dateLayout  = "2006-01-02"
	hoursPerDay = 24
)

// round1 rounds to one decimal place, the policy for hours, minutes,
// percentages, and plays-per-item ratios.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places, used only for the weekend/weekday
// hours ratio.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// daySpan returns the number of whole days between two instants, floored.
func daySpan(first, last time.Time) int {
	return int(last.Sub(first) / (hoursPerDay * time.Hour))
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
