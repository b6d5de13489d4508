// Package sink provides the concrete drawing surfaces behind [draw.Sink].
//
// Each output format has a sink type and a Render function that replays a
// recorded drawing onto it:
//
//   - [Raster]: an offscreen gogpu/gg context, encoded as PNG
//   - [SVG]: an ajstarks/svgo document
//   - PDF: the SVG document converted with rsvg-convert
//   - JSON: the recorded command list with its render metadata
//
// The pipeline renders a scene once into a [draw.Recorder] and then calls
// the Render functions for every requested format, so all artifacts of one
// run show the same layout:
//
//	rec := draw.NewRecorder()
//	_ = scene.Render(rec, surface, req, rng)
//	png, err := sink.RenderPNG(rec, surface, sink.WithStrokeWidth(2))
//	svg := sink.RenderSVG(rec, surface)
//
// Sinks never return errors from individual draw calls. A raster stroke
// failure is kept and reported by [Raster.Err] and by the Render functions.
package sink

import "github.com/matzehuels/shapescatter/pkg/render/draw"

// DefaultStrokeWidth is the pixel width of every stroke unless overridden.
const DefaultStrokeWidth = 1.0

// Option configures a sink.
type Option func(*options)

type options struct {
	strokeWidth float64
	title       string
}

func defaultOptions() options {
	return options{strokeWidth: DefaultStrokeWidth}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStrokeWidth sets the stroke width in pixels. Non-positive widths are
// ignored.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		if w > 0 {
			o.strokeWidth = w
		}
	}
}

// WithTitle sets the document title of vector outputs.
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

var (
	_ draw.Sink = (*Raster)(nil)
	_ draw.Sink = (*SVG)(nil)
)
