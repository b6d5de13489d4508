package geom

import (
	"fmt"

	"github.com/matzehuels/shapescatter/pkg/errors"
)

// Point is a 2D coordinate, logical or pixel depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// String formats the point with two decimals.
func (p Point) String() string { return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y) }

// Viewport is the rectangular logical region being rendered.
type Viewport struct {
	XMin float64 `json:"x_min" toml:"x_min"`
	XMax float64 `json:"x_max" toml:"x_max"`
	YMin float64 `json:"y_min" toml:"y_min"`
	YMax float64 `json:"y_max" toml:"y_max"`
}

// DefaultViewport is the symmetric -100..100 square the parameter form
// starts with.
var DefaultViewport = Viewport{XMin: -100, XMax: 100, YMin: -100, YMax: 100}

// Width returns XMax - XMin.
func (v Viewport) Width() float64 { return v.XMax - v.XMin }

// Height returns YMax - YMin.
func (v Viewport) Height() float64 { return v.YMax - v.YMin }

// Center returns the geometric center of the viewport.
func (v Viewport) Center() Point {
	return Point{X: (v.XMin + v.XMax) / 2, Y: (v.YMin + v.YMax) / 2}
}

// Contains reports whether p lies inside the viewport, bounds included.
func (v Viewport) Contains(p Point) bool {
	return p.X >= v.XMin && p.X <= v.XMax && p.Y >= v.YMin && p.Y <= v.YMax
}

// Validate checks that every bound is finite and that both axes have a
// strictly positive extent.
func (v Viewport) Validate() error {
	bounds := []struct {
		name string
		v    float64
	}{
		{"xMin", v.XMin}, {"xMax", v.XMax}, {"yMin", v.YMin}, {"yMax", v.YMax},
	}
	for _, b := range bounds {
		if err := errors.ValidateFinite(errors.ErrCodeInvalidViewport, b.name, b.v); err != nil {
			return err
		}
	}
	if v.XMax <= v.XMin {
		return errors.New(errors.ErrCodeInvalidViewport, "xMax (%g) must be greater than xMin (%g)", v.XMax, v.XMin)
	}
	if v.YMax <= v.YMin {
		return errors.New(errors.ErrCodeInvalidViewport, "yMax (%g) must be greater than yMin (%g)", v.YMax, v.YMin)
	}
	return nil
}

// Surface is the pixel size of an output surface.
type Surface struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultSurface matches the drawing window of the desktop application.
var DefaultSurface = Surface{Width: 800, Height: 600}

// MaxDimension is the largest width or height a surface may have.
const MaxDimension = 16384

// Validate checks that both dimensions are finite, positive and at most
// MaxDimension.
func (s Surface) Validate() error {
	if err := errors.ValidateFinite(errors.ErrCodeInvalidSurface, "width", s.Width); err != nil {
		return err
	}
	if err := errors.ValidateFinite(errors.ErrCodeInvalidSurface, "height", s.Height); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSurface, "surface must have positive size, got %gx%g", s.Width, s.Height)
	}
	if s.Width > MaxDimension || s.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidSurface, "surface %gx%g exceeds %d pixels per side", s.Width, s.Height, MaxDimension)
	}
	return nil
}

// Pixels returns the surface size rounded to whole pixels, at least 1x1.
func (s Surface) Pixels() (w, h int) {
	return max(1, int(s.Width+0.5)), max(1, int(s.Height+0.5))
}
