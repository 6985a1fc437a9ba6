package app_test

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/okian/replay/internal/app"
	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/stats"
	"github.com/okian/replay/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// historyBatch is the raw side of the shared pipeline fixture: ten distinct
// plays across 4 artists, 6 tracks, and 4 albums, plus one exact duplicate.
func historyBatch() []model.Play {
	return []model.Play{
		{TS: "2024-01-01T03:00:00Z", TrackURI: "u1", MsPlayed: 180_000, Track: "T1", Artist: "A", Album: "X"},
		{TS: "2024-01-01T08:00:00Z", TrackURI: "u2", MsPlayed: 180_000, Track: "T1", Artist: "A", Album: "X"},
		{TS: "2024-01-02T13:00:00Z", TrackURI: "u3", MsPlayed: 240_000, Track: "T2", Artist: "A", Album: "X"},
		{TS: "2024-01-03T19:00:00Z", TrackURI: "u4", MsPlayed: 200_000, Track: "T3", Artist: "B", Album: "Y"},
		{TS: "2024-01-05T10:00:00Z", TrackURI: "u5", MsPlayed: 200_000, Track: "T3", Artist: "B", Album: "Y"},
		{TS: "2024-01-06T14:00:00Z", TrackURI: "u6", MsPlayed: 300_000, Track: "T4", Artist: "C", Album: "Z"},
		{TS: "2024-01-06T15:00:00Z", TrackURI: "u7", MsPlayed: 300_000, Track: "T5", Artist: "C", Album: "Z"},
		{TS: "2024-01-07T20:00:00Z", TrackURI: "u8", MsPlayed: 150_000, Track: "T6", Artist: "D", Album: "W"},
		{TS: "2024-01-08T02:00:00Z", TrackURI: "u9", MsPlayed: 180_000, Track: "T1", Artist: "A", Album: "X"},
		{TS: "2024-01-09T09:00:00Z", TrackURI: "u10", MsPlayed: 200_000, Track: "T3", Artist: "B", Album: "Y"},
		// Identical to the first play on all three identity fields.
		{TS: "2024-01-01T03:00:00Z", TrackURI: "u1", MsPlayed: 180_000, Track: "T1", Artist: "A", Album: "X"},
	}
}

func TestProcess(t *testing.T) {
	Convey("Given a history batch with one duplicate", t, func() {
		svc := app.New()
		ctx := context.Background()

		Convey("When processing the batch", func() {
			table, err := svc.Process(ctx, model.ProcessingStats{TotalEntries: 11}, historyBatch())

			Convey("Then the duplicate is dropped and stats are filled", func() {
				So(err, ShouldBeNil)
				So(table.Plays, ShouldHaveLength, 10)
				So(table.Events, ShouldHaveLength, 10)
				So(table.Stats.TotalEntries, ShouldEqual, 11)
				So(table.Stats.DuplicatesRemoved, ShouldEqual, 1)
				So(table.Stats.FinalEntries, ShouldEqual, 10)
				So(table.Stats.DateStart, ShouldEqual, "2024-01-01")
				So(table.Stats.DateEnd, ShouldEqual, "2024-01-09")
				So(table.Stats.UniqueArtists, ShouldEqual, 4)
				So(table.Stats.UniqueTracks, ShouldEqual, 6)
				So(table.Stats.UniqueAlbums, ShouldEqual, 4)
			})

			Convey("And events parallel the surviving plays in order", func() {
				for i, e := range table.Events {
					So(e.TS, ShouldEqual, table.Plays[i].TS)
					So(e.TrackURI, ShouldEqual, table.Plays[i].TrackURI)
				}
			})
		})

		Convey("When a play has an unparseable timestamp", func() {
			bad := append(historyBatch(), model.Play{
				TS: "yesterday", TrackURI: "u99", MsPlayed: 1000, Track: "T", Artist: "A", Album: "X",
			})
			_, err := svc.Process(ctx, model.ProcessingStats{}, bad)

			Convey("Then the whole batch is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestAnalyze(t *testing.T) {
	Convey("Given a processed table", t, func() {
		svc := app.New()
		ctx := context.Background()
		table, err := svc.Process(ctx, model.ProcessingStats{}, historyBatch())
		So(err, ShouldBeNil)

		Convey("When analyzing it", func() {
			results, err := svc.Analyze(ctx, table)

			Convey("Then every view is populated with the expected shape", func() {
				So(err, ShouldBeNil)
				So(results.Overall.TotalPlays, ShouldEqual, 10)
				So(results.TopArtists, ShouldHaveLength, 4)
				So(results.TopTracks, ShouldHaveLength, 6)
				So(results.TopAlbums, ShouldHaveLength, 4)
				So(results.Temporal.TimeOfDay, ShouldHaveLength, 4)
				So(results.Temporal.DayOfWeek, ShouldHaveLength, 7)
				So(results.Advanced.LongestStreak, ShouldBeGreaterThan, 0)
			})

			Convey("And a second run over the same table is identical", func() {
				again, err := svc.Analyze(ctx, table)
				So(err, ShouldBeNil)
				So(reflect.DeepEqual(results, again), ShouldBeTrue)
			})
		})

		Convey("When ranking sizes are overridden", func() {
			small := app.New(app.WithTopArtists(2), app.WithTopTracks(3), app.WithTopAlbums(1))
			results, err := small.Analyze(ctx, table)

			Convey("Then the rankings truncate accordingly", func() {
				So(err, ShouldBeNil)
				So(results.TopArtists, ShouldHaveLength, 2)
				So(results.TopTracks, ShouldHaveLength, 3)
				So(results.TopAlbums, ShouldHaveLength, 1)
			})
		})

		Convey("When the table is empty", func() {
			empty, err := svc.Process(ctx, model.ProcessingStats{})
			So(err, ShouldBeNil)

			_, err = svc.Analyze(ctx, empty)

			Convey("Then analysis reports the empty dataset", func() {
				So(errors.Is(err, stats.ErrNoEvents), ShouldBeTrue)
			})
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a processed table and a supplemental batch", t, func() {
		svc := app.New()
		ctx := context.Background()
		table, err := svc.Process(ctx, model.ProcessingStats{TotalEntries: 11}, historyBatch())
		So(err, ShouldBeNil)

		supplemental := []model.Play{
			// New play past the end of the history.
			{TS: "2024-01-10T12:00:00Z", TrackURI: "u11", MsPlayed: 120_000, Track: "T7", Artist: "E", Album: "V"},
			// Already present in the table.
			{TS: "2024-01-09T09:00:00Z", TrackURI: "u10", MsPlayed: 200_000, Track: "T3", Artist: "B", Album: "Y"},
		}

		Convey("When merging", func() {
			merged, err := svc.Merge(ctx, table, supplemental)

			Convey("Then only the genuinely new play survives", func() {
				So(err, ShouldBeNil)
				So(merged.Events, ShouldHaveLength, 11)
				So(merged.Stats.APIEntriesAdded, ShouldEqual, 2)
				So(merged.Stats.DuplicatesRemoved, ShouldEqual, 1)
				So(merged.Stats.DateEnd, ShouldEqual, "2024-01-10")
				So(merged.Stats.UniqueArtists, ShouldEqual, 5)
			})

			Convey("And the original table is untouched", func() {
				So(table.Events, ShouldHaveLength, 10)
			})
		})
	})
}
