package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/nowplaying/internal/config"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store Last.fm settings in the config file",
	Long: `Configure nowplaying for a Last.fm account.

This command will prompt for:
1. Your Last.fm API key
2. The username served by /now-playing and /card (optional)
3. An image shown for tracks without cover art (optional)

The values are saved to ~/.config/nowplaying/config.yaml.
You can get an API key from: https://www.last.fm/api/account/create`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	return configure(cmd.InOrStdin(), cmd.OutOrStdout(), configFile)
}

// configure prompts for settings and saves them to path, or to the default
// config file when path is empty. A missing file at path is created.
func configure(in io.Reader, out io.Writer, path string) error {
	// Load existing config
	cfg, err := loadEditableConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := promptConfig(in, out, cfg); err != nil {
		return err
	}

	if path == "" {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		path = filepath.Join(config.GetConfigDir(), "config.yaml")
	} else if err := cfg.SaveFile(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Configuration saved to %s\n", path)
	fmt.Fprintln(out, "\nYou can now use 'nowplaying serve' to start the badge server.")

	return nil
}

func loadEditableConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Defaults(), nil
	}
	return config.LoadFile(path)
}

// promptConfig asks for each setting, keeping the current value on empty input
func promptConfig(in io.Reader, out io.Writer, cfg *config.Config) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Last.fm Configuration")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "You can get an API key from: https://www.last.fm/api/account/create")
	fmt.Fprintln(out)

	apiKey, err := prompt(reader, out, "Last.fm API Key", cfg.LastFM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}
	cfg.LastFM.APIKey = apiKey

	if cfg.LastFM.Username, err = prompt(reader, out, "Default username (empty disables /now-playing)", cfg.LastFM.Username); err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if cfg.LastFM.EmptyCover, err = prompt(reader, out, "Cover for tracks without artwork (URL)", cfg.LastFM.EmptyCover); err != nil {
		return fmt.Errorf("failed to read empty cover: %w", err)
	}

	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	if line = strings.TrimSpace(line); line == "" {
		return current, nil
	}
	return line, nil
}
