package pipeline

import (
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
	"github.com/matzehuels/shapescatter/pkg/render/sink"
)

// Encode replays rec into the given format.
func Encode(rec *draw.Recorder, format string, opts Options) ([]byte, error) {
	s := opts.Surface()
	sinkOpts := []sink.Option{
		sink.WithStrokeWidth(opts.StrokeWidth),
		sink.WithTitle(DefaultFileName),
	}

	switch format {
	case FormatPNG:
		return sink.RenderPNG(rec, s, sinkOpts...)
	case FormatSVG:
		return sink.RenderSVG(rec, s, sinkOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(rec, s, sinkOpts...)
	case FormatJSON:
		return sink.RenderJSON(rec, s, sink.WithJSONSeed(opts.Seed), sink.WithJSONRequest(opts.Request()))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// EncodeDrawing re-encodes a drawing decoded from a JSON artifact. The
// request it was drawn from is not carried over, so a JSON output holds
// only the surface, seed and commands.
func EncodeDrawing(d *sink.Drawing, format string, strokeWidth float64) ([]byte, error) {
	if format == FormatJSON {
		return sink.RenderJSON(d.Recorder, d.Surface, sink.WithJSONSeed(d.Seed))
	}
	if strokeWidth <= 0 {
		strokeWidth = DefaultStrokeWidth
	}
	opts := Options{
		Seed:        d.Seed,
		Width:       d.Surface.Width,
		Height:      d.Surface.Height,
		StrokeWidth: strokeWidth,
	}
	return Encode(d.Recorder, format, opts)
}
