package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
)

// weekdays in fixed reporting order (Monday first).
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// periodAcc accumulates one temporal bucket.
type periodAcc struct {
	hours   float64
	plays   int
	artists map[string]struct{}
}

func newPeriodAcc() *periodAcc {
	return &periodAcc{artists: make(map[string]struct{})}
}

func (p *periodAcc) add(e model.Event) {
	p.hours += e.DurationHours
	p.plays++
	if e.Artist != "" {
		p.artists[e.Artist] = struct{}{}
	}
}

func (p *periodAcc) row(label string) types.PeriodRow {
	return types.PeriodRow{
		Label:         label,
		Hours:         round1(p.hours),
		Plays:         p.plays,
		UniqueArtists: len(p.artists),
	}
}

// Temporal computes the four temporal break-downs. The time-of-day view
// always reports all four buckets in natural order; the day-of-week view
// always reports Monday through Sunday, zero-valued when absent; monthly
// rows cover observed (year, month) pairs chronologically; seasonal rows
// cover observed seasons in calendar order.
func Temporal(events []model.Event) types.TemporalPatterns {
	return types.TemporalPatterns{
		TimeOfDay: timeOfDayRows(events),
		DayOfWeek: dayOfWeekRows(events),
		Monthly:   monthlyRows(events),
		Seasonal:  seasonalRows(events),
	}
}

func timeOfDayRows(events []model.Event) []types.TimeOfDayRow {
	hoursBy := make(map[model.TimeOfDay]float64, len(model.TimesOfDay))
	total := 0.0
	for _, e := range events {
		hoursBy[e.TimeOfDay] += e.DurationHours
		total += e.DurationHours
	}

	rows := make([]types.TimeOfDayRow, 0, len(model.TimesOfDay))
	for _, tod := range model.TimesOfDay {
		pct := 0.0
		if total > 0 {
			pct = round1(hoursBy[tod] / total * 100)
		}
		rows = append(rows, types.TimeOfDayRow{
			Label: string(tod),
			Hours: round1(hoursBy[tod]),
			Pct:   pct,
		})
	}
	return rows
}

func dayOfWeekRows(events []model.Event) []types.PeriodRow {
	groups := make(map[string]*periodAcc, len(weekdays))
	for _, d := range weekdays {
		groups[d.String()] = newPeriodAcc()
	}
	for _, e := range events {
		groups[e.DayOfWeek].add(e)
	}

	rows := make([]types.PeriodRow, 0, len(weekdays))
	for _, d := range weekdays {
		rows = append(rows, groups[d.String()].row(d.String()))
	}
	return rows
}

// yearMonth identifies a monthly bucket.
type yearMonth struct {
	year  int
	month time.Month
}

func monthlyRows(events []model.Event) []types.PeriodRow {
	groups := make(map[yearMonth]*periodAcc)
	for _, e := range events {
		k := yearMonth{year: e.Year, month: e.Month}
		g, ok := groups[k]
		if !ok {
			g = newPeriodAcc()
			groups[k] = g
		}
		g.add(e)
	}

	keys := make([]yearMonth, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	rows := make([]types.PeriodRow, 0, len(keys))
	for _, k := range keys {
		label := fmt.Sprintf("%s %d", k.month, k.year)
		rows = append(rows, groups[k].row(label))
	}
	return rows
}

func seasonalRows(events []model.Event) []types.PeriodRow {
	groups := make(map[model.Season]*periodAcc)
	for _, e := range events {
		g, ok := groups[e.Season]
		if !ok {
			g = newPeriodAcc()
			groups[e.Season] = g
		}
		g.add(e)
	}

	rows := make([]types.PeriodRow, 0, len(groups))
	for _, s := range model.Seasons {
		if g, ok := groups[s]; ok {
			rows = append(rows, g.row(string(s)))
		}
	}
	return rows
}
