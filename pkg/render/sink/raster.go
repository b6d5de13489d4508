package sink

import (
	"bytes"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// Raster draws onto an offscreen gg context.
type Raster struct {
	ctx *gg.Context
	err error
}

// NewRaster allocates a raster surface of the given size, rounded to whole
// pixels.
func NewRaster(s geom.Surface, opts ...Option) *Raster {
	o := applyOptions(opts)
	w, h := s.Pixels()
	ctx := gg.NewContext(w, h)
	ctx.SetLineWidth(o.strokeWidth)
	ctx.SetLineJoin(gg.LineJoinRound)
	ctx.SetColor(draw.Black)
	return &Raster{ctx: ctx}
}

func (r *Raster) Clear(c draw.Color) {
	r.ctx.ClearWithColor(gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255))
}

func (r *Raster) SetStroke(c draw.Color) { r.ctx.SetColor(c) }

func (r *Raster) Line(from, to draw.Point) {
	r.ctx.DrawLine(from.X, from.Y, to.X, to.Y)
	r.stroke()
}

func (r *Raster) Oval(box draw.Box) {
	c := box.Center()
	r.ctx.DrawEllipse(c.X, c.Y, box.W/2, box.H/2)
	r.stroke()
}

func (r *Raster) Rect(box draw.Box) {
	r.ctx.DrawRectangle(box.X, box.Y, box.W, box.H)
	r.stroke()
}

func (r *Raster) Polygon(pts []draw.Point) {
	if len(pts) == 0 {
		return
	}
	r.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.ctx.LineTo(p.X, p.Y)
	}
	r.ctx.ClosePath()
	r.stroke()
}

func (r *Raster) BeginPath(p draw.Point) {
	r.ctx.ClearPath()
	r.ctx.MoveTo(p.X, p.Y)
}

func (r *Raster) LineTo(p draw.Point) { r.ctx.LineTo(p.X, p.Y) }

func (r *Raster) StrokePath() { r.stroke() }

func (r *Raster) stroke() {
	if err := r.ctx.Stroke(); err != nil && r.err == nil {
		r.err = errors.Wrap(errors.ErrCodeInternal, err, "stroke")
	}
}

func (r *Raster) flush() {
	if err := r.ctx.FlushGPU(); err != nil && r.err == nil {
		r.err = errors.Wrap(errors.ErrCodeInternal, err, "flush")
	}
}

// Err returns the first stroke or flush failure, if any.
func (r *Raster) Err() error { return r.err }

// Image returns the rendered pixels. Check Err afterwards; a failed flush
// leaves pending strokes out of the image.
func (r *Raster) Image() image.Image {
	r.flush()
	return r.ctx.Image()
}

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	r.flush()
	if r.err != nil {
		return r.err
	}
	if err := r.ctx.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// Close releases the drawing context.
func (r *Raster) Close() error { return r.ctx.Close() }

// RenderPNG replays rec onto a new raster surface and returns the PNG bytes.
func RenderPNG(rec *draw.Recorder, s geom.Surface, opts ...Option) ([]byte, error) {
	r := NewRaster(s, opts...)
	defer r.Close()

	rec.Replay(r)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
