package badge

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/nowplaying/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

// DefaultBarColor is used when no valid bar color override is given.
const DefaultBarColor = "#73becb"

// TrackSource returns a user's recent tracks, most recent first.
type TrackSource interface {
	RecentTracks(ctx context.Context, username string) ([]lastfm.Track, error)
}

// Options configures a Presenter. The zero value is usable.
type Options struct {
	Bars        BarConfig        // Defaults to DefaultBarConfig
	BarColor    string           // Defaults to DefaultBarColor
	EmptyCover  string           // Replacement for Last.fm's placeholder art (URL or data URI)
	InlineCover bool             // Embed covers as data URIs
	Policy      LastPlayedPolicy // Display track when nothing is playing
	Artwork     *ArtworkLookup   // Optional iTunes fallback for tracks without art
}

// Request holds the per-request inputs of a badge.
type Request struct {
	Username   string
	Background string // Background image URL; inlined when set
	BarColor   string // Override, validated with ParseColor; "auto" derives it from the cover
	TextColor  string // Override, validated with ParseColor
}

// RenderModel is everything the SVG template needs.
type RenderModel struct {
	NowPlaying      bool   `json:"nowPlaying"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Cover           string `json:"cover"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	BarColor        string `json:"bar_color"`
	TextColor       string `json:"text_color,omitempty"`
	BarPositions    []int  `json:"bar_positions"`
	BarWidth        int    `json:"bar_width"`
	BarLength       int    `json:"bar_length"`
	ContainerWidth  int    `json:"container_width"`
}

// Presenter runs the fetch, select, format and assemble pipeline for one
// badge. It holds no per-request state and is safe for concurrent use.
type Presenter struct {
	source TrackSource
	images *ImageFetcher
	opts   Options
	logger zerolog.Logger
}

// NewPresenter creates a Presenter.
func NewPresenter(source TrackSource, images *ImageFetcher, opts Options, logger zerolog.Logger) *Presenter {
	if opts.Bars.NumBars == 0 {
		opts.Bars = DefaultBarConfig
	}
	if c, ok := ParseColor(opts.BarColor); ok {
		opts.BarColor = c
	} else {
		opts.BarColor = DefaultBarColor
	}
	if images == nil {
		images = NewImageFetcher(nil, 0, logger)
	}

	return &Presenter{
		source: source,
		images: images,
		opts:   opts,
		logger: logger.With().Str("component", "presenter").Logger(),
	}
}

// Present builds the RenderModel for req. On error no model is returned;
// use NewErrorResult to turn the error into what viewers see.
func (p *Presenter) Present(ctx context.Context, req Request) (*RenderModel, error) {
	log := p.log(ctx)

	tracks, err := p.source.RecentTracks(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Str("user", req.Username).Msg("Failed to fetch recent tracks")
		return nil, fmt.Errorf("failed to fetch recent tracks for %s: %w", req.Username, err)
	}

	record, err := SelectTrack(tracks, p.opts.Policy)
	if err != nil {
		log.Info().Str("user", req.Username).Msg("No track data available")
		return nil, err
	}

	autoColor := strings.EqualFold(strings.TrimSpace(req.BarColor), AutoColor)

	// Cover and background have no data dependency on each other.
	var (
		cover      string
		coverImg   *Image
		background string
		wg         conc.WaitGroup
	)
	wg.Go(func() {
		cover, coverImg = p.resolveCover(ctx, record, autoColor)
	})
	if req.Background != "" {
		wg.Go(func() {
			background = p.images.DataURI(ctx, req.Background)
			if background == "" {
				log.Warn().Str("url", req.Background).Msg("Proceeding without background image")
			}
		})
	}
	wg.Wait()

	model := &RenderModel{
		NowPlaying:      record.IsNowPlaying,
		Title:           Truncate(record.Name, TitleMaxWidth),
		Artist:          Truncate(record.ArtistName, ArtistMaxWidth),
		Cover:           cover,
		BackgroundImage: background,
		BarColor:        p.opts.BarColor,
		BarPositions:    p.opts.Bars.Positions(record.IsNowPlaying),
		BarWidth:        p.opts.Bars.BarWidth,
		BarLength:       p.opts.Bars.BarLength,
		ContainerWidth:  p.opts.Bars.ContainerWidth,
	}

	switch {
	case autoColor:
		if c, err := ProminentColor(coverImg); err == nil {
			model.BarColor = c
		} else {
			log.Debug().Err(err).Msg("Keeping default bar color")
		}
	default:
		if c, ok := ParseColor(req.BarColor); ok {
			model.BarColor = c
		}
	}
	if c, ok := ParseColor(req.TextColor); ok {
		model.TextColor = c
	}

	log.Debug().
		Str("user", req.Username).
		Str("track", record.Name).
		Bool("now_playing", record.IsNowPlaying).
		Msg("Presented track")

	return model, nil
}

// resolveCover returns the cover reference for the template and, when one
// was downloaded, the cover image itself.
//
// Missing or placeholder art is first looked up with Artwork when set.
// Placeholder art is replaced by the configured empty cover, which is
// inlined when it is a URL. Real covers are inlined only with InlineCover,
// or downloaded without inlining when the bar color is derived from them.
// Anything unresolvable becomes LocalPlaceholder.
func (p *Presenter) resolveCover(ctx context.Context, record TrackRecord, needImage bool) (string, *Image) {
	if p.opts.Artwork != nil && (record.ImageURL == "" || record.HasPlaceholderCover()) {
		if u := p.opts.Artwork.Lookup(ctx, record.ArtistName, record.AlbumName, record.Name); u != "" {
			record.ImageURL = u
		}
	}

	coverURL := ResolveCoverURL(record, p.opts.EmptyCover)
	if coverURL == "" {
		return LocalPlaceholder, nil
	}

	inline := p.opts.InlineCover || record.HasPlaceholderCover()
	if !inline && !needImage {
		return coverURL, nil
	}

	img, err := p.images.Fetch(ctx, coverURL)
	if err != nil {
		p.log(ctx).Warn().Err(err).Str("url", coverURL).Msg("Failed to fetch cover")
		if inline {
			return LocalPlaceholder, nil
		}
		return coverURL, nil
	}

	if inline {
		return img.DataURI(), img
	}
	return coverURL, img
}

// log prefers the request-scoped logger carried by ctx.
func (p *Presenter) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &p.logger
}
