// Package types contains the plain result values produced by an analysis
// run. Everything here is an immutable, behavior-free value safe to traverse
// read-only and to serialize as JSON.
package types

// OverallStats is the scalar summary over the whole enriched table.
type OverallStats struct {
	DateRange           string  `json:"date_range"`
	DaysCovered         int     `json:"days_covered"`
	TotalHours          float64 `json:"total_hours"`
	DailyAvgMinutes     float64 `json:"daily_avg_minutes"`
	TotalPlays          int     `json:"total_plays"`
	UniqueTracks        int     `json:"unique_tracks"`
	UniqueArtists       int     `json:"unique_artists"`
	UniqueAlbums        int     `json:"unique_albums"`
	ActiveDays          int     `json:"active_days"`
	ActiveDaysPct       float64 `json:"active_days_pct"`
	WeekendWeekdayRatio float64 `json:"weekend_weekday_ratio"`
	NightListeningPct   float64 `json:"night_listening_pct"`
}

// ArtistStat is one row of the per-artist ranking.
type ArtistStat struct {
	Name           string  `json:"name"`
	TotalHours     float64 `json:"total_hours"`
	AvgPlayMinutes float64 `json:"avg_play_minutes"`
	TotalPlays     int     `json:"total_plays"`
	UniqueTracks   int     `json:"unique_tracks"`
	UniqueAlbums   int     `json:"unique_albums"`
	PlaysPerTrack  float64 `json:"plays_per_track"`
	WeekendPct     float64 `json:"weekend_pct"`
	FirstPlayed    string  `json:"first_played"`
	LastPlayed     string  `json:"last_played"`
	ActiveDays     int     `json:"active_days"`
}

// TrackStat is one row of the per-track ranking.
type TrackStat struct {
	Name               string  `json:"name"`
	Artist             string  `json:"artist"`
	Album              string  `json:"album"`
	TotalHours         float64 `json:"total_hours"`
	TotalPlays         int     `json:"total_plays"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
	WeekendPct         float64 `json:"weekend_pct"`
	MostCommonTime     string  `json:"most_common_time"`
	FirstPlayed        string  `json:"first_played"`
	LastPlayed         string  `json:"last_played"`
	DaysSpan           int     `json:"days_span"`
}

// AlbumStat is one row of the per-album ranking.
type AlbumStat struct {
	Name           string  `json:"name"`
	Artist         string  `json:"artist"`
	TotalHours     float64 `json:"total_hours"`
	AvgPlayMinutes float64 `json:"avg_play_minutes"`
	TotalPlays     int     `json:"total_plays"`
	UniqueTracks   int     `json:"unique_tracks"`
	PlaysPerTrack  float64 `json:"plays_per_track"`
	WeekendPct     float64 `json:"weekend_pct"`
	MostCommonTime string  `json:"most_common_time"`
	FirstPlayed    string  `json:"first_played"`
	LastPlayed     string  `json:"last_played"`
	DaysInRotation int     `json:"days_in_rotation"`
}

// TimeOfDayRow is one bucket of the time-of-day distribution. Pct is the
// bucket's share of total hours across all four buckets.
type TimeOfDayRow struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
	Pct   float64 `json:"pct"`
}

// PeriodRow is one row of the day-of-week, monthly, or seasonal
// distributions.
type PeriodRow struct {
	Label         string  `json:"label"`
	Hours         float64 `json:"hours"`
	Plays         int     `json:"plays"`
	UniqueArtists int     `json:"unique_artists"`
}

// TemporalPatterns holds the four temporal break-downs.
type TemporalPatterns struct {
	TimeOfDay []TimeOfDayRow `json:"time_of_day"`
	DayOfWeek []PeriodRow    `json:"day_of_week"`
	Monthly   []PeriodRow    `json:"monthly"`
	Seasonal  []PeriodRow    `json:"seasonal"`
}

// AdvancedMetrics is the streak/consistency/variety/preference bundle.
type AdvancedMetrics struct {
	ConsistencyPct        float64 `json:"consistency_pct"`
	AvgDailyArtists       float64 `json:"avg_daily_artists"`
	HeavyListeningDays    int     `json:"heavy_listening_days"`
	HeavyListeningPct     float64 `json:"heavy_listening_pct"`
	LightListeningDays    int     `json:"light_listening_days"`
	LightListeningPct     float64 `json:"light_listening_pct"`
	HeavilyRepeatedTracks int     `json:"heavily_repeated_tracks"`
	DailyTrackVariety     float64 `json:"daily_track_variety"`
	LongestStreak         int     `json:"longest_streak"`
	LongestStreakInfo     string  `json:"longest_streak_info"`
	CurrentStreak         int     `json:"current_streak"`
	PrimaryTime           string  `json:"primary_time"`
	PrimaryTimePct        float64 `json:"primary_time_pct"`
	AvgDailyMinutes       float64 `json:"avg_daily_minutes"`
	MedianDailyMinutes    float64 `json:"median_daily_minutes"`
	MostActiveDay         string  `json:"most_active_day"`
	MostActiveDayMinutes  float64 `json:"most_active_day_minutes"`
	DailyStdMinutes       float64 `json:"daily_std_minutes"`
	MostActiveMonth       string  `json:"most_active_month"`
	MostActiveMonthHours  float64 `json:"most_active_month_hours"`
	AvgMonthlyHours       float64 `json:"avg_monthly_hours"`
	MonthlyStdHours       float64 `json:"monthly_std_hours"`
}

// Results is the assembled output of one analysis run.
type Results struct {
	Overall    OverallStats     `json:"overall"`
	TopArtists []ArtistStat     `json:"top_artists"`
	TopTracks  []TrackStat      `json:"top_tracks"`
	TopAlbums  []AlbumStat      `json:"top_albums"`
	Temporal   TemporalPatterns `json:"temporal"`
	Advanced   AdvancedMetrics  `json:"advanced"`
}
