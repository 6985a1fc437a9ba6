package stats

import (
	"sort"
	"time"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/internal/domain/types"
)

// modalTimeDefault is reported when a group has no time-of-day values.
const modalTimeDefault = "Various"

// groupAcc accumulates one ranking group. Ordering and tie-break rules
// depend on event iteration order, which is why groups also remember the
// first-seen order of their time-of-day categories.
type groupAcc struct {
	sumMs        int64
	plays        int
	tracks       map[string]struct{}
	albums       map[string]struct{}
	weekendCount int
	first        time.Time
	last         time.Time
	timeCounts   map[model.TimeOfDay]int
	timeOrder    []model.TimeOfDay
}

func newGroupAcc() *groupAcc {
	return &groupAcc{
		tracks:     make(map[string]struct{}),
		albums:     make(map[string]struct{}),
		timeCounts: make(map[model.TimeOfDay]int),
	}
}

func (g *groupAcc) add(e model.Event) {
	if g.plays == 0 {
		g.first, g.last = e.Timestamp, e.Timestamp
	} else {
		if e.Timestamp.Before(g.first) {
			g.first = e.Timestamp
		}
		if e.Timestamp.After(g.last) {
			g.last = e.Timestamp
		}
	}

	g.sumMs += e.MsPlayed
	g.plays++
	if e.Track != "" {
		g.tracks[e.Track] = struct{}{}
	}
	if e.Album != "" {
		g.albums[e.Album] = struct{}{}
	}
	if e.IsWeekend {
		g.weekendCount++
	}

	if _, seen := g.timeCounts[e.TimeOfDay]; !seen {
		g.timeOrder = append(g.timeOrder, e.TimeOfDay)
	}
	g.timeCounts[e.TimeOfDay]++
}

// modalTime returns the highest-count time-of-day category. Ties keep the
// category first encountered in event order; a group with no categories
// reports "Various".
func (g *groupAcc) modalTime() string {
	best := ""
	bestCount := 0
	for _, tod := range g.timeOrder {
		if g.timeCounts[tod] > bestCount {
			best = string(tod)
			bestCount = g.timeCounts[tod]
		}
	}
	if best == "" {
		return modalTimeDefault
	}
	return best
}

func (g *groupAcc) hours() float64 {
	return float64(g.sumMs) / msPerHour
}

func (g *groupAcc) weekendPct() float64 {
	return round1(float64(g.weekendCount) / float64(g.plays) * 100)
}

func (g *groupAcc) playsPerTrack() float64 {
	if len(g.tracks) == 0 {
		return 0.0
	}
	return round1(float64(g.plays) / float64(len(g.tracks)))
}

// rankGroups sorts group keys by raw accumulated milliseconds descending and
// truncates to n. The sort is stable over first-seen group order, so equal
// totals rank in input order and the result is deterministic.
func rankGroups[K comparable](order []K, groups map[K]*groupAcc, n int) []K {
	ranked := make([]K, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return groups[ranked[i]].sumMs > groups[ranked[j]].sumMs
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func defaultN(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// TopArtists computes the per-artist ranking, returning at most n rows
// sorted by total listening time descending. Events without an artist are
// excluded.
func TopArtists(events []model.Event, n int) []types.ArtistStat {
	n = defaultN(n, DefaultTopArtists)

	groups := make(map[string]*groupAcc)
	var order []string
	for _, e := range events {
		if e.Artist == "" {
			continue
		}
		g, ok := groups[e.Artist]
		if !ok {
			g = newGroupAcc()
			groups[e.Artist] = g
			order = append(order, e.Artist)
		}
		g.add(e)
	}

	out := make([]types.ArtistStat, 0, n)
	for _, artist := range rankGroups(order, groups, n) {
		g := groups[artist]
		out = append(out, types.ArtistStat{
			Name:           artist,
			TotalHours:     round1(g.hours()),
			AvgPlayMinutes: round1(float64(g.sumMs) / float64(g.plays) / msPerMinute),
			TotalPlays:     g.plays,
			UniqueTracks:   len(g.tracks),
			UniqueAlbums:   len(g.albums),
			PlaysPerTrack:  g.playsPerTrack(),
			WeekendPct:     g.weekendPct(),
			FirstPlayed:    formatDate(g.first),
			LastPlayed:     formatDate(g.last),
			ActiveDays:     daySpan(g.first, g.last),
		})
	}
	return out
}

// trackKey identifies a track ranking group.
type trackKey struct {
	track  string
	artist string
	album  string
}

// TopTracks computes the per-track ranking, returning at most n rows sorted
// by total listening time descending. Groups missing any key component are
// excluded.
func TopTracks(events []model.Event, n int) []types.TrackStat {
	n = defaultN(n, DefaultTopTracks)

	groups := make(map[trackKey]*groupAcc)
	var order []trackKey
	for _, e := range events {
		if e.Track == "" || e.Artist == "" || e.Album == "" {
			continue
		}
		k := trackKey{track: e.Track, artist: e.Artist, album: e.Album}
		g, ok := groups[k]
		if !ok {
			g = newGroupAcc()
			groups[k] = g
			order = append(order, k)
		}
		g.add(e)
	}

	out := make([]types.TrackStat, 0, n)
	for _, k := range rankGroups(order, groups, n) {
		g := groups[k]
		out = append(out, types.TrackStat{
			Name:               k.track,
			Artist:             k.artist,
			Album:              k.album,
			TotalHours:         round1(g.hours()),
			TotalPlays:         g.plays,
			AvgDurationSeconds: round1(float64(g.sumMs) / float64(g.plays) / msPerSecond),
			WeekendPct:         g.weekendPct(),
			MostCommonTime:     g.modalTime(),
			FirstPlayed:        formatDate(g.first),
			LastPlayed:         formatDate(g.last),
			DaysSpan:           daySpan(g.first, g.last),
		})
	}
	return out
}

// albumKey identifies an album ranking group.
type albumKey struct {
	album  string
	artist string
}

// TopAlbums computes the per-album ranking, returning at most n rows sorted
// by total listening time descending. Groups missing any key component are
// excluded.
func TopAlbums(events []model.Event, n int) []types.AlbumStat {
	n = defaultN(n, DefaultTopAlbums)

	groups := make(map[albumKey]*groupAcc)
	var order []albumKey
	for _, e := range events {
		if e.Album == "" || e.Artist == "" {
			continue
		}
		k := albumKey{album: e.Album, artist: e.Artist}
		g, ok := groups[k]
		if !ok {
			g = newGroupAcc()
			groups[k] = g
			order = append(order, k)
		}
		g.add(e)
	}

	out := make([]types.AlbumStat, 0, n)
	for _, k := range rankGroups(order, groups, n) {
		g := groups[k]
		out = append(out, types.AlbumStat{
			Name:           k.album,
			Artist:         k.artist,
			TotalHours:     round1(g.hours()),
			AvgPlayMinutes: round1(float64(g.sumMs) / float64(g.plays) / msPerMinute),
			TotalPlays:     g.plays,
			UniqueTracks:   len(g.tracks),
			PlaysPerTrack:  g.playsPerTrack(),
			WeekendPct:     g.weekendPct(),
			MostCommonTime: g.modalTime(),
			FirstPlayed:    formatDate(g.first),
			LastPlayed:     formatDate(g.last),
			DaysInRotation: daySpan(g.first, g.last),
		})
	}
	return out
}
