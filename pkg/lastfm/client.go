// Package lastfm provides a read-only client for the Last.fm API 2.0.
//
// This package implements the parts of the Last.fm API needed to look up
// what a user is listening to. It is designed to be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/nowplaying/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recent, err := client.User().GetRecentTracks(ctx, "rj", lastfm.RecentTracksOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(recent.Tracks[0].Name)
package lastfm

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey     string        // Required: Last.fm API key
	HTTPClient *http.Client  // Optional: HTTP client (defaults to a client with Timeout)
	Timeout    time.Duration // Optional: Per-request timeout for the default HTTP client (defaults to 10s)
	BaseURL    string        // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	UserAgent  string        // Optional: User-Agent header (defaults to "nowplaying/1.0")
	Logger     Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     Logger

	user *UserService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	// DefaultTimeout bounds every outbound call made with the default HTTP client.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "nowplaying/1.0"
)

// NewClient creates a new Last.fm API client.
//
// Returns an error if required configuration (APIKey) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("lastfm: APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     cfg.Logger,
	}

	c.user = &UserService{client: c}

	return c, nil
}

// User returns the user service.
func (c *Client) User() *UserService {
	return c.user
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
