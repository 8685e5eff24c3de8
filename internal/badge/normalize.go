package badge

import (
	"fmt"

	"github.com/jfmyers9/nowplaying/pkg/lastfm"
)

// LocalPlaceholder is served as the cover when no image could be resolved.
const LocalPlaceholder = "/placeholder.png"

// LastPlayedPolicy picks the display track when nothing is playing.
type LastPlayedPolicy int

const (
	// PolicyHead shows the most recent scrobble (the head of the list).
	PolicyHead LastPlayedPolicy = iota
	// PolicySecond shows the second entry, falling back to the head when
	// the list has a single track.
	PolicySecond
)

// String returns the configuration name of the policy
func (p LastPlayedPolicy) String() string {
	switch p {
	case PolicyHead:
		return "head"
	case PolicySecond:
		return "second"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration value into a LastPlayedPolicy.
func ParsePolicy(s string) (LastPlayedPolicy, error) {
	switch s {
	case "", "head":
		return PolicyHead, nil
	case "second":
		return PolicySecond, nil
	default:
		return PolicyHead, fmt.Errorf("unknown last played policy %q", s)
	}
}

// TrackRecord holds the display fields of the selected track.
type TrackRecord struct {
	Name         string
	ArtistName   string
	AlbumName    string
	ImageURL     string // Largest image; "" when the track has none
	IsNowPlaying bool
}

// SelectTrack picks the track to display from a most-recent-first list.
// A head flagged as now playing always wins; otherwise policy decides.
func SelectTrack(tracks []lastfm.Track, policy LastPlayedPolicy) (TrackRecord, error) {
	if len(tracks) == 0 {
		return TrackRecord{}, ErrNoTrackData
	}

	head := tracks[0]
	track := head
	if !head.NowPlaying && policy == PolicySecond && len(tracks) > 1 {
		track = tracks[1]
	}

	return TrackRecord{
		Name:         track.Name,
		ArtistName:   track.Artist.Name,
		AlbumName:    track.Album,
		ImageURL:     track.LargestImage(),
		IsNowPlaying: head.NowPlaying,
	}, nil
}

// HasPlaceholderCover reports whether the track only has Last.fm's
// default star image.
func (r TrackRecord) HasPlaceholderCover() bool {
	return r.ImageURL == lastfm.PlaceholderImageURL
}

// ResolveCoverURL returns the cover reference for a record: its own image,
// or emptyCover when the image is Last.fm's placeholder. The result is
// never the placeholder URL; "" means no cover is available.
func ResolveCoverURL(r TrackRecord, emptyCover string) string {
	if r.HasPlaceholderCover() {
		if emptyCover == lastfm.PlaceholderImageURL {
			return ""
		}
		return emptyCover
	}
	return r.ImageURL
}
