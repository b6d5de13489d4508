package geom

// Mapper converts logical viewport coordinates to surface pixels.
type Mapper struct {
	v Viewport
	s Surface
}

// NewMapper validates the viewport and surface and returns the transform
// between them. Degenerate viewports are rejected here so that the mapping
// functions never divide by zero.
func NewMapper(v Viewport, s Surface) (Mapper, error) {
	if err := v.Validate(); err != nil {
		return Mapper{}, err
	}
	if err := s.Validate(); err != nil {
		return Mapper{}, err
	}
	return Mapper{v: v, s: s}, nil
}

// Viewport returns the logical bounds of the mapping.
func (m Mapper) Viewport() Viewport { return m.v }

// Surface returns the pixel bounds of the mapping.
func (m Mapper) Surface() Surface { return m.s }

// ToPixelX maps a logical x to a pixel column.
func (m Mapper) ToPixelX(x float64) float64 {
	return (x - m.v.XMin) / (m.v.XMax - m.v.XMin) * m.s.Width
}

// ToPixelY maps a logical y to a pixel row. Larger y values land higher on
// the surface.
func (m Mapper) ToPixelY(y float64) float64 {
	return (m.v.YMax - y) / (m.v.YMax - m.v.YMin) * m.s.Height
}

// ToPixel maps a logical point.
func (m Mapper) ToPixel(p Point) Point {
	return Point{X: m.ToPixelX(p.X), Y: m.ToPixelY(p.Y)}
}

