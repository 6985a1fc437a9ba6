// Package spotify fetches recently played tracks from the Spotify Web API
// to fill the gap between the newest exported play and now. The fetched
// batch is merged by concatenation and runs through the same dedupe and
// enrichment passes as file batches.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/replay/internal/domain/model"
	"github.com/okian/replay/pkg/logger"
)

// Request defaults.
const (
	defaultBaseURL = "https://api.spotify.com/v1"
	defaultTimeout = 15 * time.Second
	pageLimit      = 50
	maxPages       = 100
)

// Client calls the Spotify Web API with a user access token.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// New creates a Client for the given access token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// recentlyPlayedResponse mirrors the API payload fields we consume.
type recentlyPlayedResponse struct {
	Items []struct {
		PlayedAt string `json:"played_at"`
		Track    struct {
			Name    string `json:"name"`
			URI     string `json:"uri"`
			MsPlay  int64  `json:"duration_ms"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name string `json:"name"`
			} `json:"album"`
		} `json:"track"`
	} `json:"items"`
	Cursors *struct {
		After string `json:"after"`
	} `json:"cursors"`
}

// RecentlyPlayed fetches all plays newer than since, paging forward via the
// API's after cursor. Pages are capped defensively; the API itself only
// retains a limited window of recent plays.
func (c *Client) RecentlyPlayed(ctx context.Context, since time.Time) ([]model.Play, error) {
	log := logger.Named("spotify")

	after := strconv.FormatInt(since.UnixMilli(), 10)
	var plays []model.Play

	for page := 0; page < maxPages; page++ {
		resp, err := c.fetchPage(ctx, after)
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, item := range resp.Items {
			artist := ""
			if len(item.Track.Artists) > 0 {
				artist = item.Track.Artists[0].Name
			}
			plays = append(plays, model.Play{
				TS:       item.PlayedAt,
				TrackURI: item.Track.URI,
				MsPlayed: item.Track.MsPlay,
				Track:    item.Track.Name,
				Artist:   artist,
				Album:    item.Track.Album.Name,
			})
		}

		if resp.Cursors == nil || resp.Cursors.After == "" || resp.Cursors.After == after {
			break
		}
		after = resp.Cursors.After
	}

	log.Info(ctx, "fetched recent plays", logger.Int("plays", len(plays)))
	return plays, nil
}

func (c *Client) fetchPage(ctx context.Context, after string) (*recentlyPlayedResponse, error) {
	q := url.Values{
		"limit": {strconv.Itoa(pageLimit)},
		"after": {after},
	}
	endpoint := c.baseURL + "/me/player/recently-played?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAPIRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAPIRequest, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrAPIStatus, resp.Status)
	}

	var page recentlyPlayedResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAPIDecode, err)
	}
	return &page, nil
}
