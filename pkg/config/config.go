// Package config loads the program configuration. Values are read, in order
// of precedence, from environment variables prefixed with ARTIST_EXPLORER, an
// optional YAML file and finally the defaults supplied by the caller. The
// client credentials defaults are normally injected at build time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"Artist-Explorer-Go/pkg/spotify"
)

// Preview modes for album covers.
const (
	PreviewWindow   = "window"
	PreviewTerminal = "terminal"
	PreviewNone     = "none"
)

// Config holds the settings for a single run.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string

	// Market is the two-letter country code albums are scoped to.
	Market string

	// Preview selects how album covers are displayed.
	Preview      string
	PreviewWidth int

	// MetricsFile, when set, receives the Prometheus metrics of the run.
	MetricsFile string
	LogLevel    string
}

// Defaults are the values used when neither the environment nor a config
// file provide one.
type Defaults struct {
	ClientID     string
	ClientSecret string
}

// New returns a viper instance with defaults, environment binding and the
// config file search path set up. Callers may bind flags before Load.
func New(path string, d Defaults) *viper.Viper {
	v := viper.New()

	v.SetDefault("client_id", d.ClientID)
	v.SetDefault("client_secret", d.ClientSecret)
	v.SetDefault("token_url", spotify.TokenURL)
	v.SetDefault("market", "DE")
	v.SetDefault("preview", PreviewWindow)
	v.SetDefault("preview_width", 48)
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", "warn")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ARTIST_EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and maps v onto a Config. A missing
// file is fine unless it was requested explicitly.
func Load(v *viper.Viper) (*Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		TokenURL:     v.GetString("token_url"),
		Market:       strings.ToUpper(v.GetString("market")),
		Preview:      strings.ToLower(v.GetString("preview")),
		PreviewWidth: v.GetInt("preview_width"),
		MetricsFile:  v.GetString("metrics_file"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}

// Validate reports the first setting that would make the run fail.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("client_id and client_secret must be set")
	}
	if len(c.Market) != 2 || strings.IndexFunc(c.Market, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return fmt.Errorf("market %q is not a two-letter country code", c.Market)
	}
	switch c.Preview {
	case PreviewWindow, PreviewTerminal, PreviewNone:
	default:
		return fmt.Errorf("unknown preview mode %q", c.Preview)
	}
	if c.Preview == PreviewTerminal && c.PreviewWidth <= 0 {
		return fmt.Errorf("preview_width must be positive, got %d", c.PreviewWidth)
	}
	return nil
}

// Credentials returns the part of the config used by the authenticator.
func (c *Config) Credentials() spotify.Credentials {
	return spotify.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "artist-explorer")
}
