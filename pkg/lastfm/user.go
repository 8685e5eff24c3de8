package lastfm

import (
	"context"
	"strconv"
	"strings"
)

// UserService provides user profile operations for the Last.fm API.
type UserService struct {
	client *Client
}

// RecentTracksOptions holds optional parameters for GetRecentTracks.
type RecentTracksOptions struct {
	Limit    int  // Number of tracks per page (API default 50, max 200)
	Extended bool // Request extended artist data
}

// GetRecentTracks returns the tracks a user has recently listened to.
//
// If the user is listening to something right now, the first track has
// NowPlaying set. An empty Tracks slice means the user has no scrobbles;
// it is not an error at this layer.
//
// Does not require authentication.
//
// Example:
//
//	recent, err := client.User().GetRecentTracks(ctx, "rj", lastfm.RecentTracksOptions{Limit: 2})
//	if err != nil {
//	    log.Printf("Failed to get recent tracks: %v", err)
//	}
//	if len(recent.Tracks) > 0 && recent.Tracks[0].NowPlaying {
//	    fmt.Println("Listening to", recent.Tracks[0].Name)
//	}
func (s *UserService) GetRecentTracks(ctx context.Context, user string, opts RecentTracksOptions) (*RecentTracks, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrEmptyUser
	}

	params := map[string]string{
		"user": user,
	}

	// Add optional parameters
	if opts.Limit > 0 {
		params["limit"] = strconv.Itoa(opts.Limit)
	}
	if opts.Extended {
		params["extended"] = "1"
	}

	resp, err := s.client.call(ctx, "user.getrecenttracks", params)
	if err != nil {
		return nil, err
	}

	recent, err := unmarshalRecentTracks(resp)
	if err != nil {
		return nil, &ParseError{Method: "user.getrecenttracks", Err: err}
	}

	return recent, nil
}
