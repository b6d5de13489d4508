package figure

import (
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

const (
	// ParabolaSegments is the number of straight segments approximating a
	// parabola; the curve is sampled at ParabolaSegments+1 points.
	ParabolaSegments = 30

	// TrapezoidTopRatio is the half-width of the trapezoid's short side
	// relative to the figure size.
	TrapezoidTopRatio = 0.6
)

// Generate returns the pixel-space primitive for a figure of kind k with
// logical center c and logical size s.
func Generate(k Kind, c geom.Point, s float64, m geom.Mapper) (Primitive, error) {
	switch k {
	case Line:
		return line(c, s, m), nil
	case Circle:
		return Oval{Box: bounds(c, s, m)}, nil
	case Rectangle:
		return Rect{Box: bounds(c, s, m)}, nil
	case Triangle:
		return triangle(c, s, m), nil
	case Parabola:
		return parabola(c, s, m), nil
	case Trapezoid:
		return trapezoid(c, s, m), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFigureType, "unknown figure type %d", uint8(k))
}

// Vertices returns the logical outline points of k before pixel mapping:
// the two segment ends for Line, the box corners (top-left, bottom-right)
// for Circle and Rectangle, the polygon corners for Triangle and Trapezoid
// and every sample for Parabola.
func Vertices(k Kind, c geom.Point, s float64) []geom.Point {
	switch k {
	case Line:
		return []geom.Point{geom.Pt(c.X-s, c.Y), geom.Pt(c.X+s, c.Y+s)}
	case Circle, Rectangle:
		return []geom.Point{geom.Pt(c.X-s, c.Y+s), geom.Pt(c.X+s, c.Y-s)}
	case Triangle:
		return []geom.Point{
			geom.Pt(c.X, c.Y-s),
			geom.Pt(c.X-s, c.Y+s),
			geom.Pt(c.X+s, c.Y+s),
		}
	case Parabola:
		pts := make([]geom.Point, 0, ParabolaSegments+1)
		start, end := c.X-s, c.X+s
		for i := 0; i <= ParabolaSegments; i++ {
			x := start + (end-start)*float64(i)/ParabolaSegments
			dx := x - c.X
			pts = append(pts, geom.Pt(x, c.Y+dx*dx/s))
		}
		return pts
	case Trapezoid:
		top := s * TrapezoidTopRatio
		return []geom.Point{
			geom.Pt(c.X-s, c.Y+s),
			geom.Pt(c.X-top, c.Y-s),
			geom.Pt(c.X+top, c.Y-s),
			geom.Pt(c.X+s, c.Y+s),
		}
	}
	return nil
}

func mapAll(pts []geom.Point, m geom.Mapper) []draw.Point {
	out := make([]draw.Point, len(pts))
	for i, p := range pts {
		out[i] = m.ToPixel(p)
	}
	return out
}

func line(c geom.Point, s float64, m geom.Mapper) Segment {
	pts := mapAll(Vertices(Line, c, s), m)
	return Segment{From: pts[0], To: pts[1]}
}

// bounds maps the logical square around c to a normalized pixel box.
func bounds(c geom.Point, s float64, m geom.Mapper) draw.Box {
	pts := mapAll(Vertices(Rectangle, c, s), m)
	return draw.BoxFromCorners(pts[0], pts[1])
}

func triangle(c geom.Point, s float64, m geom.Mapper) Polygon {
	return Polygon{Points: mapAll(Vertices(Triangle, c, s), m)}
}

func parabola(c geom.Point, s float64, m geom.Mapper) Polyline {
	return Polyline{Points: mapAll(Vertices(Parabola, c, s), m)}
}

func trapezoid(c geom.Point, s float64, m geom.Mapper) Polygon {
	return Polygon{Points: mapAll(Vertices(Trapezoid, c, s), m)}
}
