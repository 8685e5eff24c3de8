package badge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jfmyers9/nowplaying/pkg/lastfm"
	"github.com/rs/zerolog"
)

func artworkServer(t *testing.T, handler http.HandlerFunc) *ArtworkLookup {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewArtworkLookup(nil, srv.URL, time.Second, zerolog.Nop())
}

func artworkResult(w http.ResponseWriter) {
	_ = json.NewEncoder(w).Encode(itunesResponse{
		Results: []itunesResult{
			{ArtworkURL100: "https://example.com/art/100x100bb.jpg"},
		},
	})
}

func TestArtworkLookup_ReturnsUpscaledURL(t *testing.T) {
	a := artworkServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("term"); got != "Queen A Night at the Opera" {
			t.Errorf("term = %q", got)
		}
		artworkResult(w)
	})

	got := a.Lookup(context.Background(), "Queen", "A Night at the Opera", "Bohemian Rhapsody")
	want := "https://example.com/art/600x600bb.jpg"
	if got != want {
		t.Errorf("Lookup() = %q, want %q", got, want)
	}
}

func TestArtworkLookup_FallsBackToSongEntity(t *testing.T) {
	var entities []string
	a := artworkServer(t, func(w http.ResponseWriter, r *http.Request) {
		entity := r.URL.Query().Get("entity")
		entities = append(entities, entity)
		if entity == "album" {
			_ = json.NewEncoder(w).Encode(itunesResponse{})
			return
		}
		artworkResult(w)
	})

	got := a.Lookup(context.Background(), "Ninajirachi", "I Love My Computer", "iPod Touch")
	if got != "https://example.com/art/600x600bb.jpg" {
		t.Errorf("Lookup() = %q", got)
	}
	if strings.Join(entities, ",") != "album,song" {
		t.Errorf("expected album then song search, got %v", entities)
	}
}

func TestArtworkLookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "no results",
			handler: func(w http.ResponseWriter, r *http.Request) { _ = json.NewEncoder(w).Encode(itunesResponse{}) },
		},
		{
			name:    "http error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := artworkServer(t, tt.handler)
			if got := a.Lookup(context.Background(), "Artist", "Album", "Title"); got != "" {
				t.Errorf("expected empty string, got %q", got)
			}
		})
	}

	a := NewArtworkLookup(nil, "http://127.0.0.1:1", time.Second, zerolog.Nop())
	if got := a.Lookup(context.Background(), "Artist", "Album", "Title"); got != "" {
		t.Errorf("expected empty string on connection error, got %q", got)
	}
}

func TestPresenter_ArtworkLookup(t *testing.T) {
	a := artworkServer(t, func(w http.ResponseWriter, r *http.Request) { artworkResult(w) })

	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{name: "placeholder art", images: []string{lastfm.PlaceholderImageURL}, want: "https://example.com/art/600x600bb.jpg"},
		{name: "no art", want: "https://example.com/art/600x600bb.jpg"},
		{name: "real art kept", images: []string{"http://img/hi.jpg"}, want: "http://img/hi.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := track("Song", true, tt.images...)
			tr.Album = "Album"
			p := newTestPresenter(&fakeSource{tracks: []lastfm.Track{tr}}, Options{Artwork: a})

			model, err := p.Present(context.Background(), Request{Username: "alice"})
			if err != nil {
				t.Fatalf("Present() error: %v", err)
			}
			if model.Cover != tt.want {
				t.Errorf("Cover = %q, want %q", model.Cover, tt.want)
			}
		})
	}
}
