package config

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshaysalvi/portfolio/internal/avatar"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, PlaceholderFileName, cfg.PlaceholderPath)
	assert.Equal(t, "profile_photo.jpg", cfg.PhotoPath)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"arial.ttf", "/System/Library/Fonts/Arial.ttf"}, cfg.AvatarFontPaths)
	assert.True(t, cfg.PlaceholderEnabled)

	req := cfg.AvatarRequest()
	assert.Equal(t, "AS", req.Label)
	assert.Equal(t, 400, req.Size)
	assert.Equal(t, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}, req.Background)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, req.Foreground)
	assert.Equal(t, avatar.ShapeSquare, req.Shape)
	assert.Equal(t, 75, req.Quality)
	assert.Equal(t, int64(1024*1024), cfg.MaxAvatarPixels())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PLACEHOLDER_PATH", LegacyPlaceholderFileName)
	t.Setenv("AVATAR_LABEL", " ZK ")
	t.Setenv("AVATAR_SHAPE", "circle")
	t.Setenv("AVATAR_SIZE", "2048")
	t.Setenv("AVATAR_FONT_PATHS", "/a.ttf,/b.ttf,/c.ttf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, LegacyPlaceholderFileName, cfg.PlaceholderPath)
	assert.Equal(t, "ZK", cfg.AvatarLabel)
	assert.Equal(t, avatar.ShapeCircle, cfg.AvatarRequest().Shape)
	assert.Equal(t, 2048, cfg.AvatarMaxSize, "max size grows to fit the bootstrap avatar")
	assert.Len(t, cfg.AvatarFontPaths, 3)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"zero size":      {"AVATAR_SIZE": "0"},
		"bad background": {"AVATAR_BACKGROUND": "blue"},
		"bad foreground": {"AVATAR_FOREGROUND": "#12"},
		"bad duration":   {"SHUTDOWN_TIMEOUT": "soon"},
		"zero max size":  {"AVATAR_MAX_SIZE": "0"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAvatarRequest_ZeroConfig(t *testing.T) {
	var req avatar.Request
	require.NotPanics(t, func() { req = (&Config{}).AvatarRequest() })

	assert.Equal(t, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}, req.Background)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, req.Foreground)
	assert.Equal(t, avatar.ShapeSquare, req.Shape)

	req = (&Config{AvatarBackground: "nope", AvatarForeground: "#000"}).AvatarRequest()
	assert.Equal(t, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}, req.Background)
	assert.Equal(t, color.RGBA{A: 0xff}, req.Foreground)
}
