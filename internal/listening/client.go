package listening

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/nowplaying/pkg/lastfm"
	"github.com/rs/zerolog"
)

// recentLimit covers the playing track plus the one before it.
const recentLimit = 2

// Client wraps the Last.fm API client
type Client struct {
	client *lastfm.Client
}

// Options configures New
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New creates a new Last.fm backed track source
func New(opts Options) (*Client, error) {
	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:  opts.APIKey,
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
		Logger:  debugLogger{opts.Logger.With().Str("component", "lastfm").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lastfm client: %w", err)
	}
	return &Client{client: client}, nil
}

// RecentTracks returns username's most recent tracks, newest first
func (c *Client) RecentTracks(ctx context.Context, username string) ([]lastfm.Track, error) {
	recent, err := c.client.User().GetRecentTracks(ctx, username, lastfm.RecentTracksOptions{
		Limit: recentLimit,
	})
	if err != nil {
		return nil, err
	}
	return recent.Tracks, nil
}

// debugLogger adapts zerolog to lastfm.Logger
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
