package report_test

import (
	"strings"
	"testing"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
	"github.com/okian/replay/internal/report"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWrite(t *testing.T) {
	Convey("Given a results bundle and processing stats", t, func() {
		proc := model.ProcessingStats{
			FilesProcessed:    2,
			TotalEntries:      11,
			DuplicatesRemoved: 1,
			APIEntriesAdded:   3,
			FinalEntries:      13,
			DateStart:         "2024-01-01",
			DateEnd:           "2024-01-09",
		}
		results := types.Results{
			Overall: types.OverallStats{
				DateRange:   "2024-01-01 to 2024-01-09",
				DaysCovered: 9,
				TotalHours:  0.6,
				TotalPlays:  10,
			},
			TopArtists: []types.ArtistStat{
				{Name: "Anna", TotalHours: 0.2, TotalPlays: 4},
			},
			TopTracks: []types.TrackStat{
				{Name: "Alpha", Artist: "Anna", TotalHours: 0.2, TotalPlays: 3},
			},
			Temporal: types.TemporalPatterns{
				TimeOfDay: []types.TimeOfDayRow{
					{Label: "Night", Hours: 0.1, Pct: 16.9},
				},
				DayOfWeek: []types.PeriodRow{
					{Label: "Monday", Hours: 0.2, Plays: 3, UniqueArtists: 1},
				},
			},
			Advanced: types.AdvancedMetrics{
				LongestStreakInfo: "3 days (2024-01-01 to 2024-01-03)",
				CurrentStreak:     1,
				PrimaryTime:       "Morning",
			},
		}

		Convey("When rendering the report", func() {
			var sb strings.Builder
			err := report.Write(&sb, proc, results)
			out := sb.String()

			Convey("Then every section appears with its rows", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "== Processing Summary ==")
				So(out, ShouldContainSubstring, "API entries added")
				So(out, ShouldContainSubstring, "== Overall ==")
				So(out, ShouldContainSubstring, "2024-01-01 to 2024-01-09")
				So(out, ShouldContainSubstring, "== Top Artists ==")
				So(out, ShouldContainSubstring, "Anna")
				So(out, ShouldContainSubstring, "== Day of Week ==")
				So(out, ShouldContainSubstring, "Monday")
				So(out, ShouldContainSubstring, "== Listening Habits ==")
				So(out, ShouldContainSubstring, "3 days (2024-01-01 to 2024-01-03)")
			})
		})

		Convey("When no API entries were added", func() {
			proc.APIEntriesAdded = 0
			var sb strings.Builder
			So(report.Write(&sb, proc, results), ShouldBeNil)

			Convey("Then the API row is omitted", func() {
				So(sb.String(), ShouldNotContainSubstring, "API entries added")
			})
		})
	})
}
