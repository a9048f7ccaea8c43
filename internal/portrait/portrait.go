// Package portrait picks what the page shows as the profile picture: a real
// photo, the generated placeholder, or initials drawn by the template.
package portrait

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-multierror"
)

// ErrNoPortrait is returned when every provider in the chain fails.
var ErrNoPortrait = errors.New("portrait: no provider succeeded")

// Kind identifies which provider produced a Portrait.
type Kind string

const (
	KindPhoto       Kind = "photo"
	KindPlaceholder Kind = "placeholder"
	KindInline      Kind = "inline"
)

// Portrait is a resolved profile picture.
type Portrait struct {
	Kind Kind
	// Path and ContentType are set for file backed portraits.
	Path        string
	ContentType string
	// Initials and Background are set for KindInline.
	Initials   string
	Background string
}

// IsFile reports whether the portrait is served from disk.
func (p Portrait) IsFile() bool {
	return p.Kind != KindInline
}

// Provider is one candidate in the chain.
type Provider interface {
	Resolve() (Portrait, error)
}

// File resolves to an image file on disk.
type File struct {
	Kind Kind
	Path string
}

func (f File) Resolve() (Portrait, error) {
	if f.Path == "" {
		return Portrait{}, fmt.Errorf("%s: no path configured", f.Kind)
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return Portrait{}, fmt.Errorf("%s: %w", f.Kind, err)
	}
	if !info.Mode().IsRegular() {
		return Portrait{}, fmt.Errorf("%s: %s is not a regular file", f.Kind, f.Path)
	}
	mt, err := mimetype.DetectFile(f.Path)
	if err != nil {
		return Portrait{}, fmt.Errorf("%s: detect type: %w", f.Kind, err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return Portrait{}, fmt.Errorf("%s: %s is %s, not an image", f.Kind, f.Path, mt.String())
	}
	return Portrait{Kind: f.Kind, Path: f.Path, ContentType: mt.String()}, nil
}

// Inline always resolves; the template draws a colored circle with the
// initials.
type Inline struct {
	Initials   string
	Background string
}

func (i Inline) Resolve() (Portrait, error) {
	return Portrait{Kind: KindInline, Initials: i.Initials, Background: i.Background}, nil
}

// Resolver tries providers in order; the first success wins.
type Resolver struct {
	providers []Provider
}

// NewResolver builds a resolver over an explicit provider list.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

// Default builds the site's chain: photo, then placeholder, then initials.
func Default(photoPath, placeholderPath, initials, background string) *Resolver {
	return NewResolver(
		File{Kind: KindPhoto, Path: photoPath},
		File{Kind: KindPlaceholder, Path: placeholderPath},
		Inline{Initials: initials, Background: background},
	)
}

// Resolve returns the first portrait a provider yields. Files are checked on
// every call so a photo dropped in while running is picked up.
func (r *Resolver) Resolve() (Portrait, error) {
	var errs *multierror.Error
	for _, p := range r.providers {
		portrait, err := p.Resolve()
		if err == nil {
			return portrait, nil
		}
		errs = multierror.Append(errs, err)
	}
	if errs == nil {
		return Portrait{}, ErrNoPortrait
	}
	return Portrait{}, fmt.Errorf("%w: %w", ErrNoPortrait, errs)
}
