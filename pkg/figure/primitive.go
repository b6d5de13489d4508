package figure

import "github.com/matzehuels/shapescatter/pkg/render/draw"

// Primitive is a single pixel-space stroke instruction. The set of
// implementations is closed to this package.
type Primitive interface {
	primitive()
}

// Segment is a straight line between two points.
type Segment struct {
	From, To draw.Point
}

// Oval is an ellipse inscribed in Box.
type Oval struct {
	Box draw.Box
}

// Rect is the outline of Box.
type Rect struct {
	Box draw.Box
}

// Polygon is a closed outline through Points.
type Polygon struct {
	Points []draw.Point
}

// Polyline is an open path through Points, stroked in one pass.
type Polyline struct {
	Points []draw.Point
}

func (Segment) primitive()  {}
func (Oval) primitive()     {}
func (Rect) primitive()     {}
func (Polygon) primitive()  {}
func (Polyline) primitive() {}

// Issue sends p to s as the matching sink command.
func Issue(s draw.Sink, p Primitive) {
	switch p := p.(type) {
	case Segment:
		s.Line(p.From, p.To)
	case Oval:
		s.Oval(p.Box)
	case Rect:
		s.Rect(p.Box)
	case Polygon:
		s.Polygon(p.Points)
	case Polyline:
		if len(p.Points) == 0 {
			return
		}
		s.BeginPath(p.Points[0])
		for _, pt := range p.Points[1:] {
			s.LineTo(pt)
		}
		s.StrokePath()
	}
}
