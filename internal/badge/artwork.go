package badge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultArtworkEndpoint is the iTunes Search API.
const DefaultArtworkEndpoint = "https://itunes.apple.com/search"

// ArtworkLookup finds cover art on the iTunes Search API for tracks that
// Last.fm has no artwork for.
type ArtworkLookup struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewArtworkLookup creates a lookup. An empty endpoint uses
// DefaultArtworkEndpoint.
func NewArtworkLookup(client *http.Client, endpoint string, timeout time.Duration, logger zerolog.Logger) *ArtworkLookup {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultArtworkEndpoint
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ArtworkLookup{
		client:   client,
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger.With().Str("component", "artwork").Logger(),
	}
}

type itunesResponse struct {
	Results []itunesResult `json:"results"`
}

type itunesResult struct {
	ArtworkURL100 string `json:"artworkUrl100"`
}

// Lookup returns an artwork URL for the track, searching albums first and
// songs second. Returns "" on any failure.
func (a *ArtworkLookup) Lookup(ctx context.Context, artist, album, title string) string {
	if album != "" {
		if u := a.search(ctx, artist+" "+album, "album"); u != "" {
			return u
		}
	}
	if title != "" {
		return a.search(ctx, artist+" "+title, "song")
	}
	return ""
}

func (a *ArtworkLookup) search(ctx context.Context, term, entity string) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := url.Values{
		"term":   {term},
		"entity": {entity},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", a.endpoint, query.Encode()), nil)
	if err != nil {
		return ""
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug().Err(err).Str("entity", entity).Msg("Artwork search failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Debug().Int("status", resp.StatusCode).Str("entity", entity).Msg("Artwork search failed")
		return ""
	}

	var result itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}
	if len(result.Results) == 0 || result.Results[0].ArtworkURL100 == "" {
		return ""
	}

	// Upscale from 100x100 to 600x600 for better quality
	return strings.Replace(result.Results[0].ArtworkURL100, "100x100bb", "600x600bb", 1)
}
