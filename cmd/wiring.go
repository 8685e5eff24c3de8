package cmd

import (
	"fmt"

	"github.com/jfmyers9/nowplaying/internal/badge"
	"github.com/jfmyers9/nowplaying/internal/config"
	"github.com/jfmyers9/nowplaying/internal/listening"
	"github.com/rs/zerolog"
)

// newPresenter builds the badge pipeline from configuration
func newPresenter(cfg *config.Config, logger zerolog.Logger) (*badge.Presenter, *listening.Client, error) {
	policy, err := badge.ParsePolicy(cfg.LastPlayed)
	if err != nil {
		return nil, nil, err
	}

	source, err := listening.New(listening.Options{
		APIKey:  cfg.LastFM.APIKey,
		BaseURL: cfg.LastFM.BaseURL,
		Timeout: cfg.FetchTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Last.fm client: %w", err)
	}

	opts := badge.Options{
		BarColor:    cfg.BarColor,
		EmptyCover:  cfg.LastFM.EmptyCover,
		InlineCover: cfg.InlineCover,
		Policy:      policy,
	}
	if cfg.ArtworkLookup {
		opts.Artwork = badge.NewArtworkLookup(nil, "", cfg.FetchTimeout, logger)
	}

	images := badge.NewImageFetcher(nil, cfg.FetchTimeout, logger)
	presenter := badge.NewPresenter(source, images, opts, logger)

	return presenter, source, nil
}
