// Package bootstrap prepares files the site expects before it starts serving.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/akshaysalvi/portfolio/internal/avatar"
)

// ErrImagingUnavailable means no generator was configured. The site still
// runs; the page falls back to inline initials.
var ErrImagingUnavailable = errors.New("bootstrap: imaging unavailable")

// Generator is the part of avatar.Generator used here.
type Generator interface {
	Generate(req avatar.Request) (*avatar.Image, error)
}

// Result describes what EnsurePlaceholder did.
type Result struct {
	Path    string
	Created bool
	Font    string
	Bytes   int
}

// EnsurePlaceholder writes a placeholder avatar to path unless a file is
// already there. A nil gen yields ErrImagingUnavailable after a warning.
func EnsurePlaceholder(gen Generator, req avatar.Request, path string, log zerolog.Logger) (Result, error) {
	log = log.With().Str("component", "bootstrap").Str("path", path).Logger()

	if _, err := os.Stat(path); err == nil {
		log.Debug().Msg("placeholder already present")
		return Result{Path: path}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{Path: path}, fmt.Errorf("stat placeholder: %w", err)
	}

	if gen == nil {
		log.Warn().Msg("imaging unavailable, placeholder not created")
		return Result{Path: path}, ErrImagingUnavailable
	}

	res, err := WritePlaceholder(gen, req, path)
	if err != nil {
		return res, err
	}
	log.Info().Str("font", res.Font).Int("bytes", res.Bytes).Msg("created profile placeholder")
	return res, nil
}

// WritePlaceholder generates req and replaces path with the result. The file
// is written to a temporary name first so a failure never leaves a partial
// image behind.
func WritePlaceholder(gen Generator, req avatar.Request, path string) (Result, error) {
	res := Result{Path: path}
	if gen == nil {
		return res, ErrImagingUnavailable
	}

	img, err := gen.Generate(req)
	if err != nil {
		return res, fmt.Errorf("generate placeholder: %w", err)
	}

	if err := writeFileAtomic(path, img.Data); err != nil {
		return res, err
	}

	res.Created = true
	res.Font = img.Font
	res.Bytes = len(img.Data)
	return res, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".placeholder-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write placeholder: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close placeholder: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod placeholder: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename placeholder: %w", err)
	}
	return nil
}
