package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/shapescatter/pkg/geom"
)

func TestCenterFullDensity(t *testing.T) {
	rng := NewRand(7)
	viewports := []geom.Viewport{
		geom.DefaultViewport,
		{XMin: 3, XMax: 9, YMin: -40, YMax: -2},
	}
	for _, v := range viewports {
		for range 500 {
			if c := Center(v, 1, rng); c != v.Center() {
				t.Fatalf("Center(%+v, 1) = %v, want %v", v, c, v.Center())
			}
		}
	}
}

func TestCenterClusterRange(t *testing.T) {
	rng := NewRand(11)
	v := geom.DefaultViewport
	for _, d := range []float64{0.25, 0.5, 0.9} {
		half := v.Width() * (1 - d) / 2
		for range 2000 {
			c := Center(v, d, rng)
			if math.Abs(c.X) > half || math.Abs(c.Y) > half {
				t.Fatalf("density %g: center %v outside +/-%g", d, c, half)
			}
		}
	}
}

func TestCenterUniformCoverage(t *testing.T) {
	const n = 10000
	rng := NewRand(20240601)
	v := geom.Viewport{XMin: -100, XMax: 300, YMin: 10, YMax: 60}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		c := Center(v, 0, rng)
		if !v.Contains(c) {
			t.Fatalf("center %v outside viewport", c)
		}
		xs[i], ys[i] = c.X, c.Y
	}

	crit := KSCritical(n)
	if d := UniformKS(xs, v.XMin, v.XMax); d > crit {
		t.Errorf("x KS distance %.4f exceeds %.4f", d, crit)
	}
	if d := UniformKS(ys, v.YMin, v.YMax); d > crit {
		t.Errorf("y KS distance %.4f exceeds %.4f", d, crit)
	}
}

func TestSizeAndColorBounds(t *testing.T) {
	rng := NewRand(3)
	for range 5000 {
		if s := Size(rng); s < MinSize || s >= MinSize+SizeSpread {
			t.Fatalf("Size() = %g outside [5, 45)", s)
		}
		c := StrokeColor(rng)
		if c.R >= MaxChannel || c.G >= MaxChannel || c.B >= MaxChannel {
			t.Fatalf("StrokeColor() = %+v has a channel >= %d", c, MaxChannel)
		}
	}
}

func TestPlaceDrawOrder(t *testing.T) {
	req := DefaultRequest()
	req.Density = 0

	got := Place(req, NewRand(99))

	rng := NewRand(99)
	kind := req.Kinds[rng.IntN(len(req.Kinds))]
	x := req.Viewport.XMin + rng.Float64()*req.Viewport.Width()
	y := req.Viewport.YMin + rng.Float64()*req.Viewport.Height()
	size := MinSize + rng.Float64()*SizeSpread
	r, g, b := rng.IntN(MaxChannel), rng.IntN(MaxChannel), rng.IntN(MaxChannel)

	if got.Kind != kind || got.Center != geom.Pt(x, y) || got.Size != size {
		t.Errorf("Place = %+v, want kind %v center (%g, %g) size %g", got, kind, x, y, size)
	}
	if int(got.Color.R) != r || int(got.Color.G) != g || int(got.Color.B) != b {
		t.Errorf("color = %+v, want %d %d %d", got.Color, r, g, b)
	}
}
