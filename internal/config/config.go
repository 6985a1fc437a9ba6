// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir is the directory scanned for history JSON files.
	DataDir string `koanf:"data_dir"`

	// TopArtists, TopTracks and TopAlbums bound the ranked views.
	TopArtists int `koanf:"top_artists"`
	TopTracks  int `koanf:"top_tracks"`
	TopAlbums  int `koanf:"top_albums"`

	// MetricsAddr exposes Prometheus metrics over HTTP when non-empty,
	// e.g. ":9090". Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// SpotifyToken authenticates the recently-played gap-fill fetch.
	// Empty disables API integration.
	SpotifyToken string `koanf:"spotify_token"`

	// SpotifyAPIURL overrides the API base URL, mainly for tests.
	SpotifyAPIURL string `koanf:"spotify_api_url"`

	// ExportDir is where exported history and analysis files are written.
	ExportDir string `koanf:"export_dir"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		DataDir:       ".",
		TopArtists:    15,
		TopTracks:     15,
		TopAlbums:     10,
		MetricsAddr:   "",
		SpotifyToken:  "",
		SpotifyAPIURL: "https://api.spotify.com/v1",
		ExportDir:     ".",
	}
}
