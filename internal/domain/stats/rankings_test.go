package stats_test

import (
	"context"
	"testing"

	"github.com/okian/replay/internal/domain/enrich"
	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTopArtists(t *testing.T) {
	Convey("Given the 10-event fixture", t, func() {
		events := fixture(t)

		Convey("When ranking artists", func() {
			artists := stats.TopArtists(events, 10)

			Convey("Then rows sort by listening time, ties in first-seen order", func() {
				So(artists, ShouldHaveLength, 4)
				So(artists[0].Name, ShouldEqual, "A")
				// B and C both total 600000ms; B appeared first.
				So(artists[1].Name, ShouldEqual, "B")
				So(artists[2].Name, ShouldEqual, "C")
				So(artists[3].Name, ShouldEqual, "D")
			})

			Convey("And the top row carries the full per-artist summary", func() {
				a := artists[0]
				So(a.TotalHours, ShouldEqual, 0.2)
				So(a.TotalPlays, ShouldEqual, 4)
				So(a.UniqueTracks, ShouldEqual, 2)
				So(a.UniqueAlbums, ShouldEqual, 1)
				So(a.PlaysPerTrack, ShouldEqual, 2.0)
				So(a.WeekendPct, ShouldEqual, 0.0)
				So(a.FirstPlayed, ShouldEqual, "2024-01-01")
				So(a.LastPlayed, ShouldEqual, "2024-01-08")
				So(a.ActiveDays, ShouldEqual, 6)
			})
		})

		Convey("When n is smaller than the number of groups", func() {
			artists := stats.TopArtists(events, 2)

			Convey("Then the ranking truncates after sorting", func() {
				So(artists, ShouldHaveLength, 2)
				So(artists[0].Name, ShouldEqual, "A")
				So(artists[1].Name, ShouldEqual, "B")
			})
		})

		Convey("When an event has no artist name", func() {
			extra := append(fixture(t), mustEvent(t, model.Play{
				TS: "2024-01-10T10:00:00Z", TrackURI: "u11", MsPlayed: 9_000_000,
				Track: "Orphan", Artist: "", Album: "X",
			}))

			artists := stats.TopArtists(extra, 10)

			Convey("Then it never forms a group, however large its total", func() {
				So(artists, ShouldHaveLength, 4)
				So(artists[0].Name, ShouldEqual, "A")
			})
		})

		Convey("When the table is empty", func() {
			So(stats.TopArtists(nil, 10), ShouldBeEmpty)
		})
	})
}

func TestTopTracks(t *testing.T) {
	Convey("Given the 10-event fixture", t, func() {
		events := fixture(t)

		Convey("When ranking tracks", func() {
			tracks := stats.TopTracks(events, 10)

			Convey("Then all six identities rank by listening time", func() {
				So(tracks, ShouldHaveLength, 6)
				So(tracks[0].Name, ShouldEqual, "T3")
				So(tracks[1].Name, ShouldEqual, "T1")
				// T4 and T5 tie at 300000ms; T4 appeared first.
				So(tracks[2].Name, ShouldEqual, "T4")
				So(tracks[3].Name, ShouldEqual, "T5")
				So(tracks[4].Name, ShouldEqual, "T2")
				So(tracks[5].Name, ShouldEqual, "T6")
			})

			Convey("And the modal listening time picks the majority bucket", func() {
				// T3: Evening, Morning, Morning.
				So(tracks[0].MostCommonTime, ShouldEqual, "Morning")
				// T1: Night, Morning, Night.
				So(tracks[1].MostCommonTime, ShouldEqual, "Night")
			})
		})

		Convey("When a track's time-of-day counts tie", func() {
			tied := []model.Event{
				mustEvent(t, model.Play{TS: "2024-01-01T20:00:00Z", TrackURI: "u1", MsPlayed: 60_000, Track: "T", Artist: "A", Album: "X"}),
				mustEvent(t, model.Play{TS: "2024-01-02T08:00:00Z", TrackURI: "u2", MsPlayed: 60_000, Track: "T", Artist: "A", Album: "X"}),
			}

			tracks := stats.TopTracks(tied, 10)

			Convey("Then the first-encountered bucket wins", func() {
				So(tracks, ShouldHaveLength, 1)
				So(tracks[0].MostCommonTime, ShouldEqual, "Evening")
			})
		})

		Convey("When a play is missing an album", func() {
			partial := []model.Event{
				mustEvent(t, model.Play{TS: "2024-01-01T10:00:00Z", TrackURI: "u1", MsPlayed: 60_000, Track: "T", Artist: "A", Album: ""}),
			}

			Convey("Then the track key is incomplete and the row is excluded", func() {
				So(stats.TopTracks(partial, 10), ShouldBeEmpty)
				// The artist ranking still counts it.
				So(stats.TopArtists(partial, 10), ShouldHaveLength, 1)
			})
		})
	})
}

func TestTopAlbums(t *testing.T) {
	Convey("Given the 10-event fixture", t, func() {
		events := fixture(t)

		Convey("When ranking albums", func() {
			albums := stats.TopAlbums(events, 10)

			Convey("Then all four albums rank by listening time", func() {
				So(albums, ShouldHaveLength, 4)
				So(albums[0].Name, ShouldEqual, "X")
				// Y and Z tie at 600000ms; Y appeared first.
				So(albums[1].Name, ShouldEqual, "Y")
				So(albums[2].Name, ShouldEqual, "Z")
				So(albums[3].Name, ShouldEqual, "W")
			})

			Convey("And per-album derived values hold", func() {
				x := albums[0]
				So(x.Artist, ShouldEqual, "A")
				So(x.TotalPlays, ShouldEqual, 4)
				So(x.UniqueTracks, ShouldEqual, 2)
				So(x.PlaysPerTrack, ShouldEqual, 2.0)
				So(x.DaysInRotation, ShouldEqual, 6)

				z := albums[2]
				So(z.WeekendPct, ShouldEqual, 100.0)
			})
		})
	})
}

// mustEvent enriches a single play, failing the test on a bad timestamp.
func mustEvent(t *testing.T, p model.Play) model.Event {
	t.Helper()

	events, err := enrich.Events(context.Background(), []model.Play{p})
	if err != nil {
		t.Fatalf("enrich play: %v", err)
	}
	return events[0]
}
