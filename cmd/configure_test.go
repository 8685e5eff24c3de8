package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfmyers9/nowplaying/internal/config"
)

func TestPromptConfig(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		existing config.LastFMConfig
		want     config.LastFMConfig
		wantErr  bool
	}{
		{
			name:  "all values entered",
			input: "key123\nalice\nhttps://example.com/empty.png\n",
			want: config.LastFMConfig{
				APIKey:     "key123",
				Username:   "alice",
				EmptyCover: "https://example.com/empty.png",
			},
		},
		{
			name:     "empty input keeps existing values",
			input:    "\n\n\n",
			existing: config.LastFMConfig{APIKey: "old", Username: "bob"},
			want:     config.LastFMConfig{APIKey: "old", Username: "bob"},
		},
		{
			name:  "input without trailing newline",
			input: "key123",
			want:  config.LastFMConfig{APIKey: "key123"},
		},
		{
			name:    "missing api key",
			input:   "\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{LastFM: tt.existing}
			var out bytes.Buffer

			err := promptConfig(strings.NewReader(tt.input), &out, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.LastFM != tt.want {
				t.Errorf("LastFM = %+v, want %+v", cfg.LastFM, tt.want)
			}
			if !strings.Contains(out.String(), "Last.fm API Key") {
				t.Errorf("expected prompt in output, got %q", out.String())
			}
		})
	}
}

func TestConfigure_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nowplaying.yaml")
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	if err := configure(strings.NewReader("key123\nalice\n\n"), &out, path); err != nil {
		t.Fatalf("configure() error: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("expected saved path in output, got %q", out.String())
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.LastFM.APIKey != "key123" || cfg.LastFM.Username != "alice" {
		t.Errorf("unexpected saved config: %+v", cfg.LastFM)
	}
	if cfg.Listen != config.DefaultListen {
		t.Errorf("Listen = %q, want default", cfg.Listen)
	}

	// Existing file values are offered as defaults
	out.Reset()
	if err := configure(strings.NewReader("\nbob\n\n"), &out, path); err != nil {
		t.Fatalf("configure() error: %v", err)
	}
	cfg, err = config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.LastFM.APIKey != "key123" || cfg.LastFM.Username != "bob" {
		t.Errorf("unexpected updated config: %+v", cfg.LastFM)
	}

	if _, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".config", "nowplaying", "config.yaml")); err == nil {
		t.Error("default config file must not be written when a path is given")
	}
}
