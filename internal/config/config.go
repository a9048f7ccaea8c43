package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/akshaysalvi/portfolio/internal/avatar"
)

// Placeholder file names used by earlier versions of the site. The second
// one came from a typo in a setup script; it is kept so an existing file can
// be pointed at with PLACEHOLDER_PATH.
const (
	PlaceholderFileName       = "profile_placeholder.jpg"
	LegacyPlaceholderFileName = "profile_phot0.JPG.jpg"
)

// Config holds the environment driven configuration for the site.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"debug"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty       bool          `env:"LOG_PRETTY" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Profile image lookup
	PhotoPath          string `env:"PHOTO_PATH" envDefault:"profile_photo.jpg"`
	PlaceholderPath    string `env:"PLACEHOLDER_PATH" envDefault:"profile_placeholder.jpg"`
	PlaceholderEnabled bool   `env:"PLACEHOLDER_ENABLED" envDefault:"true"`

	// Avatar rendering
	AvatarLabel      string   `env:"AVATAR_LABEL" envDefault:"AS"`
	AvatarSize       int      `env:"AVATAR_SIZE" envDefault:"400"`
	AvatarBackground string   `env:"AVATAR_BACKGROUND" envDefault:"#3498DB"`
	AvatarForeground string   `env:"AVATAR_FOREGROUND" envDefault:"#FFFFFF"`
	AvatarShape      string   `env:"AVATAR_SHAPE" envDefault:"square"`
	AvatarQuality    int      `env:"AVATAR_QUALITY" envDefault:"75"`
	AvatarMaxSize    int      `env:"AVATAR_MAX_SIZE" envDefault:"1024"`
	AvatarFontPaths  []string `env:"AVATAR_FONT_PATHS" envSeparator:"," envDefault:"arial.ttf,/System/Library/Fonts/Arial.ttf"`

	// Content
	ContentPath string `env:"CONTENT_PATH"` // empty uses the embedded profile
	CatalogDSN  string `env:"CATALOG_DSN" envDefault:"file::memory:"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.PhotoPath = strings.TrimSpace(c.PhotoPath)
	c.PlaceholderPath = strings.TrimSpace(c.PlaceholderPath)
	c.AvatarLabel = strings.TrimSpace(c.AvatarLabel)

	if c.AvatarSize <= 0 {
		return fmt.Errorf("AVATAR_SIZE must be positive, got %d", c.AvatarSize)
	}
	if c.AvatarMaxSize <= 0 {
		return fmt.Errorf("AVATAR_MAX_SIZE must be positive, got %d", c.AvatarMaxSize)
	}
	if c.AvatarSize > c.AvatarMaxSize {
		c.AvatarMaxSize = c.AvatarSize
	}
	if _, err := avatar.ParseHex(c.AvatarBackground); err != nil {
		return fmt.Errorf("AVATAR_BACKGROUND: %w", err)
	}
	if _, err := avatar.ParseHex(c.AvatarForeground); err != nil {
		return fmt.Errorf("AVATAR_FOREGROUND: %w", err)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Colors used when a Config was not produced by Load.
const (
	DefaultAvatarBackground = "#3498DB"
	DefaultAvatarForeground = "#FFFFFF"
)

// AvatarRequest builds the request used for the bootstrap placeholder.
// Invalid or empty colors fall back to the defaults.
func (c *Config) AvatarRequest() avatar.Request {
	return avatar.Request{
		Label:      c.AvatarLabel,
		Size:       c.AvatarSize,
		Background: colorOr(c.AvatarBackground, DefaultAvatarBackground),
		Foreground: colorOr(c.AvatarForeground, DefaultAvatarForeground),
		Shape:      avatar.ParseShape(c.AvatarShape),
		Quality:    c.AvatarQuality,
	}
}

// MaxAvatarPixels is the canvas budget handed to the generator.
func (c *Config) MaxAvatarPixels() int64 {
	return int64(c.AvatarMaxSize) * int64(c.AvatarMaxSize)
}

func colorOr(s, fallback string) color.RGBA {
	if c, err := avatar.ParseHex(s); err == nil {
		return c
	}
	c, _ := avatar.ParseHex(fallback)
	return c
}
