// Package model contains domain models passed between layers.
package model

import "time"

// Play represents one raw listening record as found in a Spotify
// extended-streaming-history export. Field tags mirror the export schema so
// batches decode directly and re-export without loss. Fields the pipeline
// does not consume are carried through untouched.
type Play struct {
	TS       string `json:"ts"`                // timestamp exactly as exported
	TrackURI string `json:"spotify_track_uri"` // stable track identity
	MsPlayed int64  `json:"ms_played"`         // play duration in milliseconds

	Track  string `json:"master_metadata_track_name"`
	Artist string `json:"master_metadata_album_artist_name"`
	Album  string `json:"master_metadata_album_album_name"`

	// Passthrough fields, never consumed by the pipeline.
	Platform         *string `json:"platform"`
	ConnCountry      *string `json:"conn_country"`
	IPAddr           *string `json:"ip_addr_decrypted"`
	UserAgent        *string `json:"user_agent_decrypted"`
	EpisodeName      *string `json:"episode_name"`
	EpisodeShowName  *string `json:"episode_show_name"`
	EpisodeURI       *string `json:"spotify_episode_uri"`
	ReasonStart      *string `json:"reason_start"`
	ReasonEnd        *string `json:"reason_end"`
	Shuffle          *bool   `json:"shuffle"`
	Skipped          *bool   `json:"skipped"`
	Offline          *bool   `json:"offline"`
	OfflineTimestamp *int64  `json:"offline_timestamp"`
	IncognitoMode    *bool   `json:"incognito_mode"`
}

// TimeOfDay is a four-way bucketing of the hour of day.
type TimeOfDay string

// Time-of-day buckets in their natural chronological order.
const (
	Night     TimeOfDay = "Night"     // [0,6)
	Morning   TimeOfDay = "Morning"   // [6,12)
	Afternoon TimeOfDay = "Afternoon" // [12,18)
	Evening   TimeOfDay = "Evening"   // [18,24)
)

// TimesOfDay lists the buckets in natural order for deterministic iteration.
var TimesOfDay = []TimeOfDay{Night, Morning, Afternoon, Evening}

// Season is a three-month bucketing of the calendar year.
type Season string

// Seasons in calendar order.
const (
	Winter Season = "Winter" // Jan-Mar
	Spring Season = "Spring" // Apr-Jun
	Summer Season = "Summer" // Jul-Sep
	Fall   Season = "Fall"   // Oct-Dec
)

// Seasons lists the seasons in calendar order for deterministic iteration.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// Event is the canonical enriched record every aggregation reads: the raw
// play plus attributes derived deterministically from its timestamp and
// duration. Events are produced once per pipeline run and never mutated.
type Event struct {
	Play

	Timestamp       time.Time // parsed instant, normalized to UTC
	DurationHours   float64
	DurationMinutes float64

	Year      int
	Month     time.Month
	Hour      int
	Quarter   int
	DayOfWeek string // weekday name, e.g. "Monday"
	IsWeekend bool

	// CalendarDay is the UTC calendar date at midnight, used only for
	// day-level grouping.
	CalendarDay time.Time

	TimeOfDay TimeOfDay
	Season    Season
}

// ProcessingStats tracks counters for the load/dedupe/enrich phases of a run.
type ProcessingStats struct {
	FilesProcessed    int    `json:"files_processed"`
	TotalEntries      int    `json:"total_entries"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	APIEntriesAdded   int    `json:"api_entries_added"`
	FinalEntries      int    `json:"final_entries"`
	DateStart         string `json:"date_start"`
	DateEnd           string `json:"date_end"`
	UniqueArtists     int    `json:"unique_artists"`
	UniqueTracks      int    `json:"unique_tracks"`
	UniqueAlbums      int    `json:"unique_albums"`
}

// FileStat summarizes a single loaded history file.
type FileStat struct {
	Name          string `json:"name"`
	SizeBytes     int64  `json:"size_bytes"`
	Entries       int    `json:"entries"`
	DateRange     string `json:"date_range"`
	UniqueTracks  int    `json:"unique_tracks"`
	UniqueArtists int    `json:"unique_artists"`
}
