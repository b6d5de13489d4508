package scene

import (
	"math/rand/v2"

	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// Size and color sampling bounds.
const (
	MinSize    = 5.0
	SizeSpread = 40.0

	// MaxChannel bounds each stroke channel to [0, MaxChannel) so figures
	// stay visible on the white background.
	MaxChannel = 200
)

// Placement is one sampled figure.
type Placement struct {
	Kind   figure.Kind `json:"kind"`
	Center geom.Point  `json:"center"`
	Size   float64     `json:"size"`
	Color  draw.Color  `json:"color"`
}

// Place samples the next figure of req from rng: kind, center, size and
// color, in that order.
func Place(req Request, rng *rand.Rand) Placement {
	var p Placement
	p.Kind = req.Kinds[rng.IntN(len(req.Kinds))]
	p.Center = Center(req.Viewport, req.Density, rng)
	p.Size = Size(rng)
	p.Color = StrokeColor(rng)
	return p
}

// Center samples a logical center point. Density 0 is uniform over v;
// density d > 0 samples around the center of v within (1-d) of its extent.
func Center(v geom.Viewport, density float64, rng *rand.Rand) geom.Point {
	if density == 0 {
		return geom.Point{
			X: v.XMin + rng.Float64()*v.Width(),
			Y: v.YMin + rng.Float64()*v.Height(),
		}
	}
	c := v.Center()
	rangeX := v.Width() * (1 - density)
	rangeY := v.Height() * (1 - density)
	return geom.Point{
		X: c.X + (rng.Float64()-0.5)*rangeX,
		Y: c.Y + (rng.Float64()-0.5)*rangeY,
	}
}

// Size samples a figure size in [MinSize, MinSize+SizeSpread).
func Size(rng *rand.Rand) float64 {
	return MinSize + rng.Float64()*SizeSpread
}

// StrokeColor samples the red, green and blue channels in that order.
func StrokeColor(rng *rand.Rand) draw.Color {
	r := uint8(rng.IntN(MaxChannel))
	g := uint8(rng.IntN(MaxChannel))
	b := uint8(rng.IntN(MaxChannel))
	return draw.RGB(r, g, b)
}
