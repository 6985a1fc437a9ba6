// Package habits computes behavioral listening metrics from day-level
// rollups of the enriched event table: streaks, consistency, variety, and
// time/month preferences.
//
// The rollup only contains calendar days present in the data; days with no
// events at all are never synthesized into zero-rows. Every ratio guards the
// zero-denominator case to 0.0, and the standard deviation of a
// single-element series is defined as 0.0.
package habits

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
)

const (
	// repeatThreshold is the total play count at which a track counts as
	// heavily repeated.
	repeatThreshold = 10

	msPerHour = 3_600_000
)

// dayRollup accumulates one calendar day.
type dayRollup struct {
	minutes float64
	artists map[string]struct{}
	tracks  map[string]struct{}
}

// Metrics computes the advanced metrics bundle. An empty event table yields
// the zero value: counts 0, percentages 0.0, labels empty.
func Metrics(events []model.Event) types.AdvancedMetrics {
	if len(events) == 0 {
		return types.AdvancedMetrics{}
	}

	rollup := make(map[time.Time]*dayRollup)
	trackPlays := make(map[string]int)
	timeCounts := make(map[model.TimeOfDay]int, len(model.TimesOfDay))
	monthHours := make(map[yearMonth]float64)

	for _, e := range events {
		r, ok := rollup[e.CalendarDay]
		if !ok {
			r = &dayRollup{
				artists: make(map[string]struct{}),
				tracks:  make(map[string]struct{}),
			}
			rollup[e.CalendarDay] = r
		}
		r.minutes += e.DurationMinutes
		if e.Artist != "" {
			r.artists[e.Artist] = struct{}{}
		}
		if e.Track != "" {
			r.tracks[e.Track] = struct{}{}
			trackPlays[e.Track]++
		}

		timeCounts[e.TimeOfDay]++
		monthHours[yearMonth{e.Year, e.Month}] += float64(e.MsPlayed) / msPerHour
	}

	days := make([]time.Time, 0, len(rollup))
	for d := range rollup {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	m := types.AdvancedMetrics{}

	// Consistency and per-day variety over all rollup days.
	var artistSum, trackSum int
	activeMinutes := make([]float64, 0, len(days))
	var mostActiveDay time.Time
	mostActiveMinutes := math.Inf(-1)
	for _, d := range days {
		r := rollup[d]
		artistSum += len(r.artists)
		trackSum += len(r.tracks)
		if r.minutes > 0 {
			activeMinutes = append(activeMinutes, r.minutes)
			if r.minutes > mostActiveMinutes {
				mostActiveMinutes = r.minutes
				mostActiveDay = d
			}
		}
	}
	m.ConsistencyPct = round1(float64(len(activeMinutes)) / float64(len(days)) * 100)
	m.AvgDailyArtists = round1(float64(artistSum) / float64(len(days)))
	m.DailyTrackVariety = round1(float64(trackSum) / float64(len(days)))

	// Heavy/light day classification at one standard deviation from the
	// active-day mean.
	if len(activeMinutes) > 0 {
		mu := mean(activeMinutes)
		sigma := sampleStd(activeMinutes)
		heavy, light := 0, 0
		for _, v := range activeMinutes {
			switch {
			case v > mu+sigma:
				heavy++
			case v < mu-sigma:
				light++
			}
		}
		m.HeavyListeningDays = heavy
		m.HeavyListeningPct = round1(float64(heavy) / float64(len(activeMinutes)) * 100)
		m.LightListeningDays = light
		m.LightListeningPct = round1(float64(light) / float64(len(activeMinutes)) * 100)

		m.AvgDailyMinutes = round1(mu)
		m.MedianDailyMinutes = round1(median(activeMinutes))
		m.MostActiveDay = mostActiveDay.Format("2006-01-02")
		m.MostActiveDayMinutes = round1(mostActiveMinutes)
		m.DailyStdMinutes = round1(sigma)
	}

	for _, n := range trackPlays {
		if n >= repeatThreshold {
			m.HeavilyRepeatedTracks++
		}
	}

	m.LongestStreak, m.LongestStreakInfo, m.CurrentStreak = streaks(days, rollup)

	// Time-of-day preference; ties resolve to the earliest bucket in
	// natural order since only a strictly greater count wins.
	bestCount := 0
	for _, tod := range model.TimesOfDay {
		if timeCounts[tod] > bestCount {
			bestCount = timeCounts[tod]
			m.PrimaryTime = string(tod)
		}
	}
	m.PrimaryTimePct = round1(float64(bestCount) / float64(len(events)) * 100)

	monthStats(monthHours, &m)

	return m
}

// streaks runs the single-pass streak state machine over the chronological
// day series. A strictly greater run length updates the record, so ties keep
// the earliest occurrence; the counter left after the scan is the trailing
// run ending on the most recent day, i.e. the current streak.
func streaks(days []time.Time, rollup map[time.Time]*dayRollup) (longest int, info string, current int) {
	var (
		run     int
		best    int
		bestEnd time.Time
	)
	for _, d := range days {
		if rollup[d].minutes > 0 {
			run++
			if run > best {
				best = run
				bestEnd = d
			}
		} else {
			run = 0
		}
	}

	info = fmt.Sprintf("%d days", best)
	if best > 0 {
		start := bestEnd.AddDate(0, 0, -(best - 1))
		info = fmt.Sprintf("%d days (%s to %s)",
			best, start.Format("2006-01-02"), bestEnd.Format("2006-01-02"))
	}
	return best, info, run
}

// yearMonth identifies a monthly bucket.
type yearMonth struct {
	year  int
	month time.Month
}

func monthStats(monthHours map[yearMonth]float64, m *types.AdvancedMetrics) {
	if len(monthHours) == 0 {
		return
	}

	months := make([]yearMonth, 0, len(monthHours))
	for ym := range monthHours {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})

	hours := make([]float64, 0, len(months))
	bestHours := math.Inf(-1)
	var bestMonth yearMonth
	for _, ym := range months {
		h := monthHours[ym]
		hours = append(hours, h)
		if h > bestHours {
			bestHours = h
			bestMonth = ym
		}
	}

	m.MostActiveMonth = fmt.Sprintf("%d/%d", int(bestMonth.month), bestMonth.year)
	m.MostActiveMonthHours = round1(bestHours)
	m.AvgMonthlyHours = round1(mean(hours))
	m.MonthlyStdHours = round1(sampleStd(hours))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 standard deviation; series shorter than two elements
// have a defined deviation of 0.0.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0.0
	}
	mu := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
