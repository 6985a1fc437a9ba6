package stats

import (
	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
)

// Overall computes the scalar summary over the whole event table. It returns
// ErrNoEvents for an empty table, since the date range would be undefined.
func Overall(events []model.Event) (types.OverallStats, error) {
	if len(events) == 0 {
		return types.OverallStats{}, ErrNoEvents
	}

	minTS, maxTS := events[0].Timestamp, events[0].Timestamp

	var (
		totalHours   float64
		weekendHours float64
		weekdayHours float64
		nightCount   int

		tracks  = make(map[string]struct{})
		artists = make(map[string]struct{})
		albums  = make(map[string]struct{})
		days    = make(map[string]struct{})
	)

	for _, e := range events {
		if e.Timestamp.Before(minTS) {
			minTS = e.Timestamp
		}
		if e.Timestamp.After(maxTS) {
			maxTS = e.Timestamp
		}

		totalHours += e.DurationHours
		if e.IsWeekend {
			weekendHours += e.DurationHours
		} else {
			weekdayHours += e.DurationHours
		}
		if e.TimeOfDay == model.Night {
			nightCount++
		}

		if e.Track != "" {
			tracks[e.Track] = struct{}{}
		}
		if e.Artist != "" {
			artists[e.Artist] = struct{}{}
		}
		if e.Album != "" {
			albums[e.Album] = struct{}{}
		}
		days[formatDate(e.CalendarDay)] = struct{}{}
	}

	daysCovered := daySpan(minTS, maxTS) + 1

	dailyAvgMinutes := 0.0
	activeDaysPct := 0.0
	if daysCovered > 0 {
		dailyAvgMinutes = round1(totalHours * 60 / float64(daysCovered))
		activeDaysPct = round1(float64(len(days)) / float64(daysCovered) * 100)
	}

	ratio := 0.0
	if weekdayHours > 0 {
		ratio = round2(weekendHours / weekdayHours)
	}

	return types.OverallStats{
		DateRange:           formatDate(minTS) + " to " + formatDate(maxTS),
		DaysCovered:         daysCovered,
		TotalHours:          round1(totalHours),
		DailyAvgMinutes:     dailyAvgMinutes,
		TotalPlays:          len(events),
		UniqueTracks:        len(tracks),
		UniqueArtists:       len(artists),
		UniqueAlbums:        len(albums),
		ActiveDays:          len(days),
		ActiveDaysPct:       activeDaysPct,
		WeekendWeekdayRatio: ratio,
		NightListeningPct:   round1(float64(nightCount) / float64(len(events)) * 100),
	}, nil
}
