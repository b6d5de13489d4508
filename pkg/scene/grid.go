package scene

import (
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// GridLines is the number of gridlines drawn per axis.
const GridLines = 10

// DrawGrid strokes GridLines light vertical and horizontal lines across the
// surface, starting at the minimum bound and spaced a tenth of the extent
// apart, followed by the black axes at logical zero. An axis is omitted
// when zero maps outside the surface.
func DrawGrid(s draw.Sink, m geom.Mapper) {
	v, surf := m.Viewport(), m.Surface()
	stepX := v.Width() / GridLines
	stepY := v.Height() / GridLines

	s.SetStroke(draw.GridColor)
	for i := range GridLines {
		px := m.ToPixelX(v.XMin + float64(i)*stepX)
		s.Line(draw.Point{X: px, Y: 0}, draw.Point{X: px, Y: surf.Height})
	}
	for i := range GridLines {
		py := m.ToPixelY(v.YMin + float64(i)*stepY)
		s.Line(draw.Point{X: 0, Y: py}, draw.Point{X: surf.Width, Y: py})
	}

	s.SetStroke(draw.Black)
	if px := m.ToPixelX(0); px >= 0 && px <= surf.Width {
		s.Line(draw.Point{X: px, Y: 0}, draw.Point{X: px, Y: surf.Height})
	}
	if py := m.ToPixelY(0); py >= 0 && py <= surf.Height {
		s.Line(draw.Point{X: 0, Y: py}, draw.Point{X: surf.Width, Y: py})
	}
}
