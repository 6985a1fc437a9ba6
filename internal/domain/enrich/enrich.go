// Package enrich derives calendar and time-bucket attributes for raw plays.
//
// Enrichment is a pure, deterministic function of the raw fields: the same
// deduplicated input always produces the same enriched table, in the same
// order, with the same cardinality.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/replay/internal/domain/model"
)

// Millisecond conversion factors.
const (
	msPerHour   = 3_600_000
	msPerMinute = 60_000
)

// Events enriches every play in order. It fails on the first play whose
// timestamp does not parse; a dataset with unparsable timestamps is rejected
// wholesale rather than partially recovered.
func Events(ctx context.Context, plays []model.Play) ([]model.Event, error) {
	events := make([]model.Event, 0, len(plays))
	for i, p := range plays {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		e, err := Event(p)
		if err != nil {
			return nil, fmt.Errorf("play %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Event enriches a single play.
func Event(p model.Play) (model.Event, error) {
	ts, err := time.Parse(time.RFC3339Nano, p.TS)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %q", ErrTimestampParse, p.TS)
	}
	ts = ts.UTC()

	year, month, day := ts.Date()

	return model.Event{
		Play: p,

		Timestamp:       ts,
		DurationHours:   float64(p.MsPlayed) / msPerHour,
		DurationMinutes: float64(p.MsPlayed) / msPerMinute,

		Year:      year,
		Month:     month,
		Hour:      ts.Hour(),
		Quarter:   quarterOf(month),
		DayOfWeek: ts.Weekday().String(),
		IsWeekend: isWeekend(ts.Weekday()),

		CalendarDay: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),

		TimeOfDay: TimeOfDayOf(ts.Hour()),
		Season:    SeasonOf(month),
	}, nil
}

// TimeOfDayOf buckets an hour (0-23) into the four half-open intervals
// [0,6) Night, [6,12) Morning, [12,18) Afternoon, [18,24) Evening.
func TimeOfDayOf(hour int) model.TimeOfDay {
	switch {
	case hour < 6:
		return model.Night
	case hour < 12:
		return model.Morning
	case hour < 18:
		return model.Afternoon
	default:
		return model.Evening
	}
}

// SeasonOf buckets a month into calendar seasons: Jan-Mar Winter, Apr-Jun
// Spring, Jul-Sep Summer, Oct-Dec Fall.
func SeasonOf(m time.Month) model.Season {
	return model.Seasons[(int(m)-1)/3]
}

func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
