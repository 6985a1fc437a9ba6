package spotify_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/replay/internal/spotify"
	"github.com/okian/replay/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const pageOne = `{
  "items": [
    {"played_at": "2024-04-01T10:00:00.000Z",
     "track": {"name": "Alpha", "uri": "spotify:track:a", "duration_ms": 180000,
               "artists": [{"name": "Anna"}, {"name": "Guest"}],
               "album": {"name": "First"}}},
    {"played_at": "2024-04-01T11:00:00.000Z",
     "track": {"name": "Beta", "uri": "spotify:track:b", "duration_ms": 210000,
               "artists": [],
               "album": {"name": "First"}}}
  ],
  "cursors": {"after": "1711969200000"}
}`

const pageTwo = `{
  "items": [
    {"played_at": "2024-04-01T12:00:00.000Z",
     "track": {"name": "Gamma", "uri": "spotify:track:c", "duration_ms": 240000,
               "artists": [{"name": "Bo"}],
               "album": {"name": "Second"}}}
  ],
  "cursors": null
}`

func TestRecentlyPlayed(t *testing.T) {
	Convey("Given an API serving two pages of recent plays", t, func() {
		since := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

		var gotAuth []string
		var gotAfter []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = append(gotAuth, r.Header.Get("Authorization"))
			after := r.URL.Query().Get("after")
			gotAfter = append(gotAfter, after)

			if after == "1711969200000" {
				fmt.Fprint(w, pageTwo)
				return
			}
			fmt.Fprint(w, pageOne)
		}))
		defer srv.Close()

		client := spotify.New("secret-token", spotify.WithBaseURL(srv.URL))

		Convey("When fetching plays newer than the export", func() {
			plays, err := client.RecentlyPlayed(context.Background(), since)

			Convey("Then both pages map into raw plays", func() {
				So(err, ShouldBeNil)
				So(plays, ShouldHaveLength, 3)
				So(plays[0].TS, ShouldEqual, "2024-04-01T10:00:00.000Z")
				So(plays[0].TrackURI, ShouldEqual, "spotify:track:a")
				So(plays[0].MsPlayed, ShouldEqual, 180000)
				So(plays[0].Artist, ShouldEqual, "Anna")
				So(plays[0].Album, ShouldEqual, "First")
				So(plays[2].Track, ShouldEqual, "Gamma")
			})

			Convey("And a track without artists maps to an empty artist", func() {
				So(plays[1].Artist, ShouldEqual, "")
			})

			Convey("And every request is authorized and cursor-driven", func() {
				So(gotAuth, ShouldHaveLength, 2)
				So(gotAuth[0], ShouldEqual, "Bearer secret-token")
				So(gotAfter[0], ShouldEqual, "1711962000000")
				So(gotAfter[1], ShouldEqual, "1711969200000")
			})
		})
	})

	Convey("Given an API returning an empty first page", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"items": [], "cursors": null}`)
		}))
		defer srv.Close()

		client := spotify.New("t", spotify.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			plays, err := client.RecentlyPlayed(context.Background(), time.Now())

			Convey("Then no plays and no error are returned", func() {
				So(err, ShouldBeNil)
				So(plays, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an API rejecting the token", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad token", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := spotify.New("bad", spotify.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			_, err := client.RecentlyPlayed(context.Background(), time.Now())

			Convey("Then the status error surfaces", func() {
				So(errors.Is(err, spotify.ErrAPIStatus), ShouldBeTrue)
			})
		})
	})

	Convey("Given an API returning malformed JSON", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"items": [`)
		}))
		defer srv.Close()

		client := spotify.New("t", spotify.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			_, err := client.RecentlyPlayed(context.Background(), time.Now())

			Convey("Then the decode error surfaces", func() {
				So(errors.Is(err, spotify.ErrAPIDecode), ShouldBeTrue)
			})
		})
	})
}
