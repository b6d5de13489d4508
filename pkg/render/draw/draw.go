// Package draw defines the primitive drawing surface the renderer writes to.
//
// A [Sink] is an opaque receiver of stroke commands in pixel space. The
// scene package issues every command through it and never touches pixels
// directly, so the same render pass can target a raster image, an SVG
// document, or a [Recorder] used by tests and the JSON export.
package draw

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/shapescatter/pkg/geom"
)

// Point is a pixel-space coordinate.
type Point = geom.Point

// Color is an opaque 8-bit RGB stroke or fill color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Predefined colors.
var (
	White     = Color{255, 255, 255}
	Black     = Color{0, 0, 0}
	GridColor = Color{230, 230, 230}
)

// RGB builds a Color from channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Hex formats the color as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Box is an axis-aligned pixel rectangle given by its top-left corner and
// its extent. Boxes produced by this module always have W >= 0 and H >= 0.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BoxFromCorners returns the normalized box spanned by two opposite corners,
// whatever their order.
func BoxFromCorners(a, b Point) Box {
	return Box{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: abs(b.X - a.X),
		H: abs(b.Y - a.Y),
	}
}

// Center returns the center of the box.
func (b Box) Center() Point { return Point{X: b.X + b.W/2, Y: b.Y + b.H/2} }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Sink receives primitive draw commands. Calls are issued sequentially from
// a single goroutine for the duration of one render pass.
//
// Stroke commands use the color from the most recent SetStroke call. A path
// is opened with BeginPath, extended with LineTo and stroked as one
// continuous polyline by StrokePath.
type Sink interface {
	// Clear fills the whole surface with c.
	Clear(c Color)
	// SetStroke sets the color for subsequent stroke commands.
	SetStroke(c Color)
	// Line strokes a straight segment.
	Line(from, to Point)
	// Oval strokes the ellipse inscribed in box.
	Oval(box Box)
	// Rect strokes the outline of box.
	Rect(box Box)
	// Polygon strokes the closed polygon through pts.
	Polygon(pts []Point)
	// BeginPath starts a new open path at p.
	BeginPath(p Point)
	// LineTo extends the current path to p.
	LineTo(p Point)
	// StrokePath strokes and discards the current path.
	StrokePath()
}
