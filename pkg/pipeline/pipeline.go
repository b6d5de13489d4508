// Package pipeline provides the render pipeline shared by the CLI, the
// interactive form and the HTTP server.
//
// By centralizing seed resolution, caching and encoding here, every entry
// point produces the same artifacts for the same options.
//
// # Architecture
//
// A run has two stages:
//
//  1. Draw: resolve the seed and render the scene once into a
//     [draw.Recorder]
//  2. Encode: replay the recording into every requested format (PNG, SVG,
//     PDF, JSON)
//
// Because all formats are encoded from one recording, a saved PNG always
// shows exactly the layout of the SVG or JSON produced in the same run, and
// a run repeated with the reported seed reproduces it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatPNG, pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//	fmt.Println("seed:", result.Seed)
package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/shapescatter/pkg/cache"
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
	"github.com/matzehuels/shapescatter/pkg/render/sink"
	"github.com/matzehuels/shapescatter/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Form and Server
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 600.0

	// DefaultStrokeWidth is the default stroke width in pixels.
	DefaultStrokeWidth = sink.DefaultStrokeWidth

	// DefaultFileName is the base name used when saving without a name.
	DefaultFileName = "random_drawing"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options
	Count    int           `json:"count"`
	Viewport geom.Viewport `json:"viewport"`
	Density  float64       `json:"density"`
	ShowGrid bool          `json:"show_grid"`
	Kinds    []figure.Kind `json:"kinds"`

	// Seed selects the random layout. Zero picks a fresh seed, which is
	// reported in the Result.
	Seed uint64 `json:"seed,omitempty"`

	// Output options
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Formats     []string `json:"formats,omitempty"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the options of the parameter form with PNG
// output: ten figures of every kind, bounds -100..100, density 0.3 and the
// grid on.
func DefaultOptions() Options {
	req := scene.DefaultRequest()
	return Options{
		Count:       req.Count,
		Viewport:    req.Viewport,
		Density:     req.Density,
		ShowGrid:    req.ShowGrid,
		Kinds:       req.Kinds,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		StrokeWidth: DefaultStrokeWidth,
		Formats:     []string{FormatPNG},
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the seed the scene was drawn with.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Recording holds the draw commands. It is nil when every artifact came
	// from the cache.
	Recording *draw.Recorder

	// Placements lists the sampled figures, in drawing order. It is nil
	// when every artifact came from the cache.
	Placements []scene.Placement

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Figures    int
	Commands   int
	DrawTime   time.Duration
	EncodeTime time.Duration
	Bytes      map[string]int
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hits      []string // Formats served from the cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills in output defaults, resolves a zero seed and
// validates the scene request. Scene fields are never defaulted: a zero
// count draws nothing and an empty kind list is rejected.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateFinite(errors.ErrCodeInvalidInput, "stroke width", o.StrokeWidth); err != nil {
		return err
	}
	if err := o.Surface().Validate(); err != nil {
		return err
	}
	if err := o.Request().Validate(); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = NewSeed()
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for the output surface and formats.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
}

// Request returns the scene request described by o.
func (o *Options) Request() scene.Request {
	return scene.Request{
		Count:    o.Count,
		Viewport: o.Viewport,
		Density:  o.Density,
		ShowGrid: o.ShowGrid,
		Kinds:    o.Kinds,
	}
}

// Surface returns the output surface described by o.
func (o *Options) Surface() geom.Surface {
	return geom.Surface{Width: o.Width, Height: o.Height}
}

// RequestHash hashes the scene request together with the seed and surface.
// Artifacts with equal hashes and equal ArtifactKeyOpts are identical.
func (o *Options) RequestHash() string {
	return cache.RequestHash(struct {
		Request scene.Request `json:"request"`
		Seed    uint64        `json:"seed"`
	}{o.Request(), o.Seed})
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       o.Width,
		Height:      o.Height,
		StrokeWidth: o.StrokeWidth,
	}
}

// NewSeed returns a random non-zero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
