// Package avatar draws placeholder profile images: a solid canvas with a
// short label centered on it, encoded as JPEG.
package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// ContentType is the media type of every generated image.
	ContentType = "image/jpeg"

	// DefaultQuality matches the encoder default the site was built with.
	DefaultQuality = 75

	// DefaultMaxPixels bounds the canvas allocation for a single call.
	DefaultMaxPixels int64 = 4096 * 4096

	// fontScale sizes the label at 120pt on a 400px canvas.
	fontScale = 0.3

	terminalFontName = "basicfont"
)

// Shape selects how the background is painted.
type Shape string

const (
	ShapeSquare Shape = "square"
	ShapeCircle Shape = "circle"
)

// ParseShape maps a name to a Shape. Anything unrecognised is a square.
func ParseShape(s string) Shape {
	if strings.EqualFold(strings.TrimSpace(s), string(ShapeCircle)) {
		return ShapeCircle
	}
	return ShapeSquare
}

// Request describes one placeholder to draw.
type Request struct {
	Label      string
	Size       int
	Background color.RGBA
	Foreground color.RGBA
	Shape      Shape
	Quality    int
}

// Image is an encoded placeholder. Width and Height always equal the
// requested size.
type Image struct {
	Data   []byte
	Width  int
	Height int
	// Font names the source the label was rendered with.
	Font string
}

// Generator renders placeholder avatars. A Generator holds no mutable state
// and is safe for concurrent use.
type Generator struct {
	sources   []FontSource
	encoder   Encoder
	maxPixels int64
	matte     color.RGBA
	log       zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSources replaces the font source chain. The terminal bitmap font is
// always tried after these.
func WithSources(sources ...FontSource) Option {
	return func(g *Generator) {
		g.sources = sources
	}
}

// WithEncoder replaces the JPEG encoder.
func WithEncoder(enc Encoder) Option {
	return func(g *Generator) {
		g.encoder = enc
	}
}

// WithMaxPixels sets the largest canvas area a single call may allocate.
func WithMaxPixels(n int64) Option {
	return func(g *Generator) {
		g.maxPixels = n
	}
}

// WithMatte sets the color painted outside the disc for ShapeCircle.
func WithMatte(c color.RGBA) Option {
	return func(g *Generator) {
		g.matte = c
	}
}

// WithLogger attaches a logger for font fallback diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log.With().Str("component", "avatar").Logger()
	}
}

// New returns a Generator using the default font chain and JPEG encoder.
func New(opts ...Option) *Generator {
	g := &Generator{
		sources:   DefaultSources(),
		encoder:   JPEGEncoder{},
		maxPixels: DefaultMaxPixels,
		matte:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws req and returns the encoded image. The only errors are
// *GenerationError values; font lookups never fail the call.
func (g *Generator) Generate(req Request) (*Image, error) {
	if req.Size <= 0 {
		return nil, newGenerationError(StageValidate, errInvalidSize(req.Size))
	}
	// Divide rather than square so huge sizes cannot overflow past the budget.
	if int64(req.Size) > g.maxPixels/int64(req.Size) {
		return nil, newGenerationError(StageAllocate, errCanvasTooLarge(req.Size, g.maxPixels))
	}

	canvas := image.NewRGBA(image.Rect(0, 0, req.Size, req.Size))
	g.paintBackground(canvas, req)

	face, fontName := g.resolveFace(float64(req.Size) * fontScale)
	defer face.Close()

	origin := centeredOrigin(face, req.Label, req.Size)
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(req.Foreground),
		Face: face,
		Dot:  origin,
	}
	d.DrawString(req.Label)

	var buf bytes.Buffer
	if err := g.encoder.Encode(&buf, canvas, normalizeQuality(req.Quality)); err != nil {
		return nil, newGenerationError(StageEncode, err)
	}

	return &Image{
		Data:   buf.Bytes(),
		Width:  req.Size,
		Height: req.Size,
		Font:   fontName,
	}, nil
}

func (g *Generator) paintBackground(canvas *image.RGBA, req Request) {
	bounds := canvas.Bounds()
	if req.Shape != ShapeCircle {
		draw.Draw(canvas, bounds, image.NewUniform(req.Background), image.Point{}, draw.Src)
		return
	}
	draw.Draw(canvas, bounds, image.NewUniform(g.matte), image.Point{}, draw.Src)
	draw.DrawMask(canvas, bounds, image.NewUniform(req.Background), image.Point{}, &disc{size: req.Size}, image.Point{}, draw.Over)
}

// resolveFace walks the source chain and returns the first face that loads.
func (g *Generator) resolveFace(points float64) (font.Face, string) {
	var failures *multierror.Error
	for _, src := range g.sources {
		face, err := src.Load(points)
		if err == nil {
			if failures != nil {
				g.log.Debug().Err(failures).Str("font", src.Name()).Msg("font sources skipped")
			}
			return face, src.Name()
		}
		failures = multierror.Append(failures, &FontResolutionFailure{Source: src.Name(), Err: err})
	}
	g.log.Debug().Err(failures.ErrorOrNil()).Msg("no font source loaded, using bitmap fallback")
	return basicfont.Face7x13, terminalFontName
}

// centeredOrigin positions the label so its bounding box, measured from the
// ascender line, sits in the middle of the canvas. The raw box height is
// used without baseline correction.
func centeredOrigin(face font.Face, label string, size int) fixed.Point26_6 {
	bounds, _ := font.BoundString(face, label)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := floorDiv(size-w, 2)
	y := floorDiv(size-h, 2)

	return fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(y) + face.Metrics().Ascent,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func normalizeQuality(q int) int {
	switch {
	case q <= 0:
		return DefaultQuality
	case q > 100:
		return 100
	default:
		return q
	}
}

// disc is an alpha mask that is opaque inside the inscribed circle.
type disc struct {
	size int
}

func (d *disc) ColorModel() color.Model { return color.AlphaModel }

func (d *disc) Bounds() image.Rectangle { return image.Rect(0, 0, d.size, d.size) }

func (d *disc) At(x, y int) color.Color {
	r := float64(d.size) / 2
	dx := float64(x) + 0.5 - r
	dy := float64(y) + 0.5 - r
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}
