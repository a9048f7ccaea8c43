package avatar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontPaths are the system fonts tried before the embedded font.
var DefaultFontPaths = []string{
	"arial.ttf",
	"/System/Library/Fonts/Arial.ttf",
}

// fontDirs are searched, in order, for bare font file names.
var fontDirs = []string{
	"/usr/share/fonts/truetype/msttcorefonts",
	"/Library/Fonts",
	`C:\Windows\Fonts`,
}

// FontSource produces a font face at a given point size.
type FontSource interface {
	Name() string
	Load(points float64) (font.Face, error)
}

// DefaultSources returns the chain built from DefaultFontPaths.
func DefaultSources() []FontSource {
	return SourcesFromPaths(DefaultFontPaths)
}

// SourcesFromPaths builds a chain of file sources for paths, followed by the
// embedded Go Regular font.
func SourcesFromPaths(paths []string) []FontSource {
	sources := make([]FontSource, 0, len(paths)+1)
	for _, p := range paths {
		if p == "" {
			continue
		}
		sources = append(sources, FileFont(p))
	}
	return append(sources, EmbeddedFont("goregular", goregular.TTF))
}

// FileFont loads a TrueType/OpenType font from disk. The file is read on
// every Load.
type FileFont string

func (f FileFont) Name() string { return string(f) }

func (f FileFont) Load(points float64) (font.Face, error) {
	data, err := readFontFile(string(f))
	if err != nil {
		return nil, err
	}
	return parseFace(data, points)
}

func readFontFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil || filepath.IsAbs(path) || !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	for _, dir := range fontDirs {
		if data, derr := os.ReadFile(filepath.Join(dir, path)); derr == nil {
			return data, nil
		}
	}
	return nil, err
}

type embeddedFont struct {
	name string
	data []byte
}

// EmbeddedFont wraps font bytes compiled into the binary.
func EmbeddedFont(name string, data []byte) FontSource {
	return embeddedFont{name: name, data: data}
}

func (e embeddedFont) Name() string { return e.name }

func (e embeddedFont) Load(points float64) (font.Face, error) {
	return parseFace(e.data, points)
}

// parseFace builds a fresh face; faces are not safe to share between
// goroutines.
func parseFace(data []byte, points float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}
