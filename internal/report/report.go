// Package report renders analysis results as plain text for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
)

// Write renders the full report to w.
func Write(w io.Writer, proc model.ProcessingStats, r types.Results) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	section(tw, "Processing Summary")
	row(tw, "Files processed", "%d", proc.FilesProcessed)
	row(tw, "Total entries", "%d", proc.TotalEntries)
	row(tw, "Duplicates removed", "%d", proc.DuplicatesRemoved)
	if proc.APIEntriesAdded > 0 {
		row(tw, "API entries added", "%d", proc.APIEntriesAdded)
	}
	row(tw, "Final entries", "%d", proc.FinalEntries)
	row(tw, "Date range", "%s to %s", proc.DateStart, proc.DateEnd)

	section(tw, "Overall")
	row(tw, "Date range", "%s", r.Overall.DateRange)
	row(tw, "Days covered", "%d", r.Overall.DaysCovered)
	row(tw, "Total hours", "%.1f", r.Overall.TotalHours)
	row(tw, "Daily average (min)", "%.1f", r.Overall.DailyAvgMinutes)
	row(tw, "Total plays", "%d", r.Overall.TotalPlays)
	row(tw, "Unique artists", "%d", r.Overall.UniqueArtists)
	row(tw, "Unique tracks", "%d", r.Overall.UniqueTracks)
	row(tw, "Unique albums", "%d", r.Overall.UniqueAlbums)
	row(tw, "Active days", "%d (%.1f%%)", r.Overall.ActiveDays, r.Overall.ActiveDaysPct)
	row(tw, "Weekend/weekday ratio", "%.2f", r.Overall.WeekendWeekdayRatio)
	row(tw, "Night listening", "%.1f%%", r.Overall.NightListeningPct)

	section(tw, "Top Artists")
	for i, a := range r.TopArtists {
		fmt.Fprintf(tw, "%d.\t%s\t%.1f h\t%d plays\n", i+1, a.Name, a.TotalHours, a.TotalPlays)
	}

	section(tw, "Top Tracks")
	for i, t := range r.TopTracks {
		fmt.Fprintf(tw, "%d.\t%s - %s\t%.1f h\t%d plays\n", i+1, t.Name, t.Artist, t.TotalHours, t.TotalPlays)
	}

	section(tw, "Top Albums")
	for i, a := range r.TopAlbums {
		fmt.Fprintf(tw, "%d.\t%s - %s\t%.1f h\t%d plays\n", i+1, a.Name, a.Artist, a.TotalHours, a.TotalPlays)
	}

	section(tw, "Time of Day")
	for _, t := range r.Temporal.TimeOfDay {
		fmt.Fprintf(tw, "%s\t%.1f h\t%.1f%%\n", t.Label, t.Hours, t.Pct)
	}

	section(tw, "Day of Week")
	for _, d := range r.Temporal.DayOfWeek {
		fmt.Fprintf(tw, "%s\t%.1f h\t%d plays\t%d artists\n", d.Label, d.Hours, d.Plays, d.UniqueArtists)
	}

	section(tw, "Monthly")
	for _, m := range r.Temporal.Monthly {
		fmt.Fprintf(tw, "%s\t%.1f h\t%d plays\t%d artists\n", m.Label, m.Hours, m.Plays, m.UniqueArtists)
	}

	section(tw, "Seasonal")
	for _, s := range r.Temporal.Seasonal {
		fmt.Fprintf(tw, "%s\t%.1f h\t%d plays\t%d artists\n", s.Label, s.Hours, s.Plays, s.UniqueArtists)
	}

	adv := r.Advanced
	section(tw, "Listening Habits")
	row(tw, "Consistency", "%.1f%%", adv.ConsistencyPct)
	row(tw, "Avg artists per day", "%.1f", adv.AvgDailyArtists)
	row(tw, "Heavy days", "%d (%.1f%%)", adv.HeavyListeningDays, adv.HeavyListeningPct)
	row(tw, "Light days", "%d (%.1f%%)", adv.LightListeningDays, adv.LightListeningPct)
	row(tw, "Heavily repeated tracks", "%d", adv.HeavilyRepeatedTracks)
	row(tw, "Daily track variety", "%.1f", adv.DailyTrackVariety)
	row(tw, "Longest streak", "%s", adv.LongestStreakInfo)
	row(tw, "Current streak", "%d days", adv.CurrentStreak)
	row(tw, "Primary time", "%s (%.1f%%)", adv.PrimaryTime, adv.PrimaryTimePct)
	row(tw, "Avg daily minutes", "%.1f", adv.AvgDailyMinutes)
	row(tw, "Median daily minutes", "%.1f", adv.MedianDailyMinutes)
	row(tw, "Most active day", "%s (%.1f min)", adv.MostActiveDay, adv.MostActiveDayMinutes)
	row(tw, "Most active month", "%s (%.1f h)", adv.MostActiveMonth, adv.MostActiveMonthHours)
	row(tw, "Avg monthly hours", "%.1f", adv.AvgMonthlyHours)

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func row(w io.Writer, label, format string, args ...any) {
	fmt.Fprintf(w, "%s\t"+format+"\n", append([]any{label}, args...)...)
}
