// Package lastfm provides a client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements a small Go client for the read-only parts of
// the Last.fm API, focusing on a user's listening activity. It provides a
// type-safe API with context support and structured errors.
//
// # Installation
//
//	go get github.com/jfmyers9/nowplaying/pkg/lastfm
//
// # Quick Start
//
// Create a client with your API key:
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
// # Recent Tracks
//
// user.getRecentTracks returns a user's listening history, most recent
// first. A track that is playing right now is flagged with NowPlaying:
//
//	recent, err := client.User().GetRecentTracks(ctx, "rj", lastfm.RecentTracksOptions{
//	    Limit: 2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, t := range recent.Tracks {
//	    fmt.Println(t.Artist.Name, "-", t.Name, t.NowPlaying)
//	}
//
// Tracks without cover art carry Last.fm's placeholder star image; compare
// Track.LargestImage against PlaceholderImageURL to detect it.
//
// # Error Handling
//
// The package distinguishes the ways a call can fail:
//
//	recent, err := client.User().GetRecentTracks(ctx, user, lastfm.RecentTracksOptions{})
//	if err != nil {
//	    var statusErr *lastfm.StatusError
//	    var apiErr *lastfm.Error
//	    var parseErr *lastfm.ParseError
//	    switch {
//	    case errors.As(err, &statusErr):
//	        // Non-2xx HTTP status
//	    case errors.As(err, &apiErr):
//	        // Last.fm reported an error in the response body
//	    case errors.As(err, &parseErr):
//	        // The body did not match the expected schema
//	    default:
//	        // Network failure or context cancellation
//	    }
//	}
//
// No call is retried by this package.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	recent, err := client.User().GetRecentTracks(ctx, "rj", lastfm.RecentTracksOptions{})
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for testing),
// and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 5 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - User (user.getRecentTracks)
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api/show/user.getRecentTracks
package lastfm
