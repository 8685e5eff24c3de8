package lastfm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PlaceholderImageURL is the star image Last.fm returns for tracks without
// real cover art.
const PlaceholderImageURL = "https://lastfm.freetls.fastly.net/i/u/300x300/2a96cbd8b46e442fc41c2b86b821562f.png"

// RecentTracks represents the response from user.getRecentTracks.
type RecentTracks struct {
	Tracks []Track                // Most recent first; a now playing track is always the head
	Attr   RecentTracksAttributes // Paging information
}

// RecentTracksAttributes holds the paging info from the "@attr" object.
type RecentTracksAttributes struct {
	User       string
	Page       int
	PerPage    int
	TotalPages int
	Total      int
}

// Track represents one entry of a user's recent tracks.
type Track struct {
	Name       string
	Artist     Artist
	Album      string
	URL        string
	MBID       string
	Images     []Image   // Ordered from smallest to largest
	NowPlaying bool      // Set from @attr.nowplaying
	PlayedAt   time.Time // Zero for a now playing track
}

// Artist identifies the performer of a track.
type Artist struct {
	Name string
	MBID string
}

// Image is one size variant of a track's cover art.
type Image struct {
	Size string // small, medium, large, extralarge
	URL  string
}

// LargestImage returns the URL of the last (highest resolution) image,
// or "" if the track has none.
func (t Track) LargestImage() string {
	if len(t.Images) == 0 {
		return ""
	}
	return t.Images[len(t.Images)-1].URL
}

// recentTracksEnvelope mirrors the JSON document of user.getRecentTracks.
type recentTracksEnvelope struct {
	RecentTracks *struct {
		Track trackList `json:"track"`
		Attr  struct {
			User       string `json:"user"`
			Page       string `json:"page"`
			PerPage    string `json:"perPage"`
			TotalPages string `json:"totalPages"`
			Total      string `json:"total"`
		} `json:"@attr"`
	} `json:"recenttracks"`
}

// trackList accepts either an array of tracks or a single track object;
// Last.fm collapses one-element lists in some responses.
type trackList []jsonTrack

func (l *trackList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case data[0] == '[':
		var tracks []jsonTrack
		if err := json.Unmarshal(data, &tracks); err != nil {
			return err
		}
		*l = tracks
		return nil
	case data[0] == '{':
		var track jsonTrack
		if err := json.Unmarshal(data, &track); err != nil {
			return err
		}
		*l = trackList{track}
		return nil
	default:
		return fmt.Errorf("track: expected array or object, got %.20s", data)
	}
}

type jsonTrack struct {
	Name   string     `json:"name"`
	URL    string     `json:"url"`
	MBID   string     `json:"mbid"`
	Artist jsonArtist `json:"artist"`
	Album  struct {
		Text string `json:"#text"`
	} `json:"album"`
	Image []struct {
		Size string `json:"size"`
		Text string `json:"#text"`
	} `json:"image"`
	Attr *struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
	Date *struct {
		UTS string `json:"uts"`
	} `json:"date"`
}

// jsonArtist handles both the plain ("#text") and extended ("name") shapes.
type jsonArtist struct {
	Text string `json:"#text"`
	Name string `json:"name"`
	MBID string `json:"mbid"`
}

func (t jsonTrack) toTrack() Track {
	track := Track{
		Name:   t.Name,
		URL:    t.URL,
		MBID:   t.MBID,
		Album:  t.Album.Text,
		Artist: Artist{Name: t.Artist.Text, MBID: t.Artist.MBID},
	}
	if track.Artist.Name == "" {
		track.Artist.Name = t.Artist.Name
	}
	for _, img := range t.Image {
		track.Images = append(track.Images, Image{Size: img.Size, URL: img.Text})
	}
	if t.Attr != nil && t.Attr.NowPlaying == "true" {
		track.NowPlaying = true
	}
	if t.Date != nil && t.Date.UTS != "" {
		if uts, err := strconv.ParseInt(t.Date.UTS, 10, 64); err == nil {
			track.PlayedAt = time.Unix(uts, 0).UTC()
		}
	}
	return track
}

// unmarshalRecentTracks parses the JSON response from user.getRecentTracks.
func unmarshalRecentTracks(data []byte) (*RecentTracks, error) {
	var env recentTracksEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent tracks response: %w", err)
	}

	result := &RecentTracks{}
	if env.RecentTracks == nil {
		return result, nil
	}

	attr := env.RecentTracks.Attr
	result.Attr = RecentTracksAttributes{
		User:       attr.User,
		Page:       atoi(attr.Page),
		PerPage:    atoi(attr.PerPage),
		TotalPages: atoi(attr.TotalPages),
		Total:      atoi(attr.Total),
	}

	result.Tracks = make([]Track, 0, len(env.RecentTracks.Track))
	for _, t := range env.RecentTracks.Track {
		result.Tracks = append(result.Tracks, t.toTrack())
	}

	return result, nil
}

// atoi parses the stringly typed numbers Last.fm sends, returning 0 on failure.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
