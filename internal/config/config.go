package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Address the HTTP server listens on
	// Default: ":3000"
	Listen string

	// Log level (debug, info, warn, error)
	LogLevel string

	// Timeout applied to every outbound call
	FetchTimeout time.Duration

	// Default visualizer bar color
	BarColor string

	// Embed the cover as a data URI instead of linking to it
	InlineCover bool

	// Look up missing cover art on the iTunes Search API
	ArtworkLookup bool

	// Which track represents "last played" when nothing is playing
	// ("head" or "second")
	LastPlayed string

	// Go template used by "nowplaying now"
	// Default: "{{.Artist}} - {{.Title}}"
	OutputFormat string

	// Last.fm API credentials and defaults
	LastFM LastFMConfig
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	APIKey string

	// Username served by the fixed endpoints; empty disables them
	Username string

	// Image used when a track only has Last.fm's placeholder art
	// (URL or data URI)
	EmptyCover string

	// API root; only overridden in tests
	BaseURL string
}

const (
	DefaultListen       = ":3000"
	DefaultBarColor     = "#73becb"
	DefaultFetchTimeout = 8 * time.Second
	DefaultOutputFormat = "{{.Artist}} - {{.Title}}"
)

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnv(v)

	return fromViper(v), nil
}

// LoadFile reads configuration from an explicit file path and the environment
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	bindEnv(v)

	return fromViper(v), nil
}

// Defaults returns the default configuration with environment overrides
// applied and no config file read
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("log_level", "info")
	v.SetDefault("fetch_timeout", DefaultFetchTimeout)
	v.SetDefault("bar_color", DefaultBarColor)
	v.SetDefault("inline_cover", false)
	v.SetDefault("artwork_lookup", false)
	v.SetDefault("last_played", "head")
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.username", "")
	v.SetDefault("lastfm.empty_cover", "")
	v.SetDefault("lastfm.base_url", "")
}

// bindEnv maps NOWPLAYING_* variables onto config keys,
// e.g. NOWPLAYING_LASTFM_API_KEY -> lastfm.api_key
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("NOWPLAYING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Listen:        v.GetString("listen"),
		LogLevel:      v.GetString("log_level"),
		FetchTimeout:  v.GetDuration("fetch_timeout"),
		BarColor:      v.GetString("bar_color"),
		InlineCover:   v.GetBool("inline_cover"),
		ArtworkLookup: v.GetBool("artwork_lookup"),
		LastPlayed:    v.GetString("last_played"),
		OutputFormat:  v.GetString("output.format"),
		LastFM: LastFMConfig{
			APIKey:     v.GetString("lastfm.api_key"),
			Username:   v.GetString("lastfm.username"),
			EmptyCover: v.GetString("lastfm.empty_cover"),
			BaseURL:    v.GetString("lastfm.base_url"),
		},
	}
}

// Validate checks that the configuration can serve badges
func (c *Config) Validate() error {
	if c.LastFM.APIKey == "" {
		return fmt.Errorf("Last.fm API key not configured. Run 'nowplaying configure' or set NOWPLAYING_LASTFM_API_KEY")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	switch c.LastPlayed {
	case "head", "second":
	default:
		return fmt.Errorf("last_played must be \"head\" or \"second\", got %q", c.LastPlayed)
	}
	return nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "nowplaying")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configDir := getConfigDir()

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return c.SaveFile(filepath.Join(configDir, "config.yaml"))
}

// SaveFile writes configuration to the given path
func (c *Config) SaveFile(path string) error {
	v := viper.New()

	// Set values in viper
	v.Set("listen", c.Listen)
	v.Set("log_level", c.LogLevel)
	v.Set("fetch_timeout", c.FetchTimeout.String())
	v.Set("bar_color", c.BarColor)
	v.Set("inline_cover", c.InlineCover)
	v.Set("artwork_lookup", c.ArtworkLookup)
	v.Set("last_played", c.LastPlayed)
	v.Set("output.format", c.OutputFormat)
	v.Set("lastfm.api_key", c.LastFM.APIKey)
	v.Set("lastfm.username", c.LastFM.Username)
	v.Set("lastfm.empty_cover", c.LastFM.EmptyCover)
	if c.LastFM.BaseURL != "" {
		v.Set("lastfm.base_url", c.LastFM.BaseURL)
	}

	// Write to file
	return v.WriteConfigAs(path)
}
