package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// SVG writes draw commands as an SVG document. Coordinates are rounded to
// whole pixels; oval radii and rect sizes never round below one pixel.
type SVG struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	w, h   int
	stroke string
	open   []draw.Point
	ended  bool
}

// NewSVG starts a document of the given size.
func NewSVG(s geom.Surface, opts ...Option) *SVG {
	o := applyOptions(opts)
	r := &SVG{stroke: strokeStyle(draw.Black)}
	r.w, r.h = s.Pixels()
	r.canvas = svg.New(&r.buf)
	r.canvas.Start(r.w, r.h)
	if o.title != "" {
		r.canvas.Title(o.title)
	}
	r.canvas.Gstyle(fmt.Sprintf("fill:none;stroke-width:%g;stroke-linejoin:round", o.strokeWidth))
	return r
}

func strokeStyle(c draw.Color) string { return "stroke:" + c.Hex() }

func px(v float64) int { return int(math.Round(v)) }

// extent rounds a size, keeping small figures visible.
func extent(v float64) int { return max(px(v), 1) }

func coords(pts []draw.Point) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	return xs, ys
}

func (r *SVG) Clear(c draw.Color) {
	r.canvas.Rect(0, 0, r.w, r.h, "stroke:none;fill:"+c.Hex())
}

func (r *SVG) SetStroke(c draw.Color) { r.stroke = strokeStyle(c) }

func (r *SVG) Line(from, to draw.Point) {
	r.canvas.Line(px(from.X), px(from.Y), px(to.X), px(to.Y), r.stroke)
}

func (r *SVG) Oval(box draw.Box) {
	c := box.Center()
	r.canvas.Ellipse(px(c.X), px(c.Y), extent(box.W/2), extent(box.H/2), r.stroke)
}

func (r *SVG) Rect(box draw.Box) {
	r.canvas.Rect(px(box.X), px(box.Y), extent(box.W), extent(box.H), r.stroke)
}

func (r *SVG) Polygon(pts []draw.Point) {
	if len(pts) == 0 {
		return
	}
	xs, ys := coords(pts)
	r.canvas.Polygon(xs, ys, r.stroke)
}

func (r *SVG) BeginPath(p draw.Point) { r.open = append(r.open[:0], p) }

func (r *SVG) LineTo(p draw.Point) { r.open = append(r.open, p) }

func (r *SVG) StrokePath() {
	if len(r.open) == 0 {
		return
	}
	xs, ys := coords(r.open)
	r.canvas.Polyline(xs, ys, r.stroke)
	r.open = r.open[:0]
}

// Bytes closes the document and returns it. The sink must not be drawn on
// afterwards.
func (r *SVG) Bytes() []byte {
	if !r.ended {
		r.canvas.Gend()
		r.canvas.End()
		r.ended = true
	}
	return r.buf.Bytes()
}

// RenderSVG replays rec onto a new SVG document.
func RenderSVG(rec *draw.Recorder, s geom.Surface, opts ...Option) []byte {
	r := NewSVG(s, opts...)
	rec.Replay(r)
	return r.Bytes()
}
