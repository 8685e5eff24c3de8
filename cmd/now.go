/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/jfmyers9/nowplaying/internal/badge"
	"github.com/jfmyers9/nowplaying/internal/config"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now [username]",
	Short: "Display a user's current Last.fm track",
	Long: `Query Last.fm and display the track a user is listening to.

The username defaults to lastfm.username from the config file.

The output format can be customized in ~/.config/nowplaying/config.yaml
(output.format) using a Go template. Available fields: .Title, .Artist,
.Cover, .NowPlaying

With --svg or --json the badge itself (or its render model) is written
to stdout instead, whether or not a track is playing.

Exit codes:
  0 - Track is currently playing
  1 - No track playing, or Last.fm could not be reached`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	// Add format flag to override config
	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled)")
	nowCmd.Flags().Bool("svg", false, "Write the SVG badge to stdout")
	nowCmd.Flags().Bool("json", false, "Write the badge render model as JSON")
}

// nowTrack is the data available to the output template
type nowTrack struct {
	Title      string
	Artist     string
	Cover      string
	NowPlaying bool
}

func runNow(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	username := cfg.LastFM.Username
	if len(args) == 1 {
		username = args[0]
	}
	if username == "" {
		return fmt.Errorf("no username given and lastfm.username is not configured")
	}

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
	defer cancel()

	logger := setupLogger("", "error")
	presenter, source, err := newPresenter(cfg, logger)
	if err != nil {
		return err
	}

	asSVG, _ := cmd.Flags().GetBool("svg")
	asJSON, _ := cmd.Flags().GetBool("json")
	if asSVG || asJSON {
		model, err := presenter.Present(ctx, badge.Request{Username: username})
		return writeBadge(cmd.OutOrStdout(), model, err, asJSON)
	}

	tracks, err := source.RecentTracks(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get recent tracks: %w", err)
	}

	policy, _ := badge.ParsePolicy(cfg.LastPlayed)
	record, err := badge.SelectTrack(tracks, policy)
	if err != nil || !record.IsNowPlaying {
		// If not playing, exit with code 1
		os.Exit(1)
		return nil
	}

	// Format and print output
	output, err := formatTrack(nowTrack{
		Title:      record.Name,
		Artist:     record.ArtistName,
		Cover:      record.ImageURL,
		NowPlaying: record.IsNowPlaying,
	}, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	width, _ := cmd.Flags().GetInt("width")
	output = padToWidth(output, width)

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// writeBadge writes the rendered badge, or the error badge when presenting failed
func writeBadge(w io.Writer, model *badge.RenderModel, presentErr error, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if presentErr != nil {
			return enc.Encode(badge.NewErrorResult(presentErr))
		}
		return enc.Encode(model)
	}

	renderer, err := badge.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	if presentErr != nil {
		return renderer.RenderError(w, badge.NewErrorResult(presentErr))
	}
	return renderer.Render(w, model)
}

// formatTrack applies the template to the track data
func formatTrack(track nowTrack, templateStr string) (string, error) {
	if templateStr == "" {
		templateStr = config.DefaultOutputFormat
	}

	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)
	if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}
	if currentWidth == width {
		return text
	}

	const ellipsis = "..."
	ellipsisWidth := runewidth.StringWidth(ellipsis)
	if width <= ellipsisWidth {
		return runewidth.Truncate(ellipsis, width, "")
	}

	// A wide rune at the cut can leave the result one column short
	result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis
	if resultWidth := runewidth.StringWidth(result); resultWidth < width {
		result += strings.Repeat(" ", width-resultWidth)
	}
	return result
}
