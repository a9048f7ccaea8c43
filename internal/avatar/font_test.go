package avatar

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestSourcesFromPaths(t *testing.T) {
	sources := SourcesFromPaths([]string{"arial.ttf", "", "/fonts/x.ttf"})
	require.Len(t, sources, 3)
	assert.Equal(t, "arial.ttf", sources[0].Name())
	assert.Equal(t, "/fonts/x.ttf", sources[1].Name())
	assert.Equal(t, "goregular", sources[2].Name())
}

func TestFileFont_LoadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	face, err := FileFont(path).Load(40)
	require.NoError(t, err)
	defer face.Close()
	assert.Positive(t, face.Metrics().Ascent.Ceil())
}

func TestFileFont_Errors(t *testing.T) {
	_, err := FileFont(filepath.Join(t.TempDir(), "missing.ttf")).Load(40)
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))
	_, err = FileFont(garbage).Load(40)
	assert.Error(t, err)
}

func TestEmbeddedFont_InvalidData(t *testing.T) {
	_, err := EmbeddedFont("broken", []byte{1, 2, 3}).Load(12)
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#3498DB", want: color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}},
		{in: "3498db", want: color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}},
		{in: "#fff", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: " #000000 ", want: color.RGBA{A: 0xff}},
		{in: "#12345", wantErr: true},
		{in: "zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, Hex(got)))
		})
	}
}

func mustParse(t *testing.T, s string) color.RGBA {
	t.Helper()
	c, err := ParseHex(s)
	require.NoError(t, err)
	return c
}
