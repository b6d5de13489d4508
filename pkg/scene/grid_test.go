package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// linesByColor groups recorded line commands by the stroke color active
// when they were issued.
func linesByColor(rec *draw.Recorder) map[draw.Color][]draw.Command {
	out := make(map[draw.Color][]draw.Command)
	var current draw.Color
	for _, c := range rec.Commands {
		switch c.Op {
		case draw.OpSetStroke:
			current = *c.Color
		case draw.OpLine:
			out[current] = append(out[current], c)
		}
	}
	return out
}

func isVertical(c draw.Command) bool   { return c.Points[0].X == c.Points[1].X }
func isHorizontal(c draw.Command) bool { return c.Points[0].Y == c.Points[1].Y }

func gridFor(t *testing.T, v geom.Viewport) *draw.Recorder {
	t.Helper()
	m, err := geom.NewMapper(v, geom.DefaultSurface)
	if err != nil {
		t.Fatal(err)
	}
	rec := draw.NewRecorder()
	DrawGrid(rec, m)
	return rec
}

func TestGridLineCount(t *testing.T) {
	viewports := []geom.Viewport{
		geom.DefaultViewport,
		{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		{XMin: -0.3, XMax: 0.7, YMin: 1e6, YMax: 1e6 + 3},
		{XMin: 0.1, XMax: 0.4, YMin: -1e-3, YMax: 1e-3},
		{XMin: -12345.678, XMax: 98765.4321, YMin: -7, YMax: 13},
	}

	for _, v := range viewports {
		rec := gridFor(t, v)
		grid := linesByColor(rec)[draw.GridColor]
		var vertical, horizontal int
		for _, c := range grid {
			switch {
			case isVertical(c):
				vertical++
			case isHorizontal(c):
				horizontal++
			}
		}
		if vertical != GridLines || horizontal != GridLines {
			t.Errorf("viewport %+v: %d vertical, %d horizontal gridlines, want %d each",
				v, vertical, horizontal, GridLines)
		}
	}
}

func TestGridLinesSpanSurface(t *testing.T) {
	rec := gridFor(t, geom.DefaultViewport)
	grid := linesByColor(rec)[draw.GridColor]
	s := geom.DefaultSurface
	for i, c := range grid[:GridLines] {
		want := float64(i) * s.Width / GridLines
		if math.Abs(c.Points[0].X-want) > 1e-9 {
			t.Errorf("vertical line %d at x=%g, want %g", i, c.Points[0].X, want)
		}
		if c.Points[0].Y != 0 || c.Points[1].Y != s.Height {
			t.Errorf("vertical line %d spans %g..%g", i, c.Points[0].Y, c.Points[1].Y)
		}
	}
	// Horizontal lines start at yMin, the bottom edge.
	first := grid[GridLines]
	if first.Points[0].Y != s.Height {
		t.Errorf("first horizontal line at y=%g, want %g", first.Points[0].Y, s.Height)
	}
}

func TestAxisSuppression(t *testing.T) {
	tests := []struct {
		name           string
		v              geom.Viewport
		wantVertical   bool
		wantHorizontal bool
		wantX, wantY   float64
	}{
		{
			name:           "x excludes zero",
			v:              geom.Viewport{XMin: 10, XMax: 20, YMin: -100, YMax: 100},
			wantHorizontal: true,
			wantY:          300,
		},
		{
			name:           "symmetric x",
			v:              geom.Viewport{XMin: -10, XMax: 10, YMin: -100, YMax: 100},
			wantVertical:   true,
			wantHorizontal: true,
			wantX:          400,
			wantY:          300,
		},
		{
			name: "neither axis",
			v:    geom.Viewport{XMin: 1, XMax: 2, YMin: -5, YMax: -1},
		},
		{
			name:         "zero on the edge",
			v:            geom.Viewport{XMin: -50, XMax: 0, YMin: 1, YMax: 3},
			wantVertical: true,
			wantX:        800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axes := linesByColor(gridFor(t, tt.v))[draw.Black]
			var vertical, horizontal []draw.Command
			for _, c := range axes {
				if isVertical(c) {
					vertical = append(vertical, c)
				} else {
					horizontal = append(horizontal, c)
				}
			}
			if got := len(vertical) == 1; got != tt.wantVertical {
				t.Errorf("vertical axis drawn = %v, want %v", got, tt.wantVertical)
			}
			if got := len(horizontal) == 1; got != tt.wantHorizontal {
				t.Errorf("horizontal axis drawn = %v, want %v", got, tt.wantHorizontal)
			}
			if tt.wantVertical && len(vertical) == 1 && vertical[0].Points[0].X != tt.wantX {
				t.Errorf("vertical axis at x=%g, want %g", vertical[0].Points[0].X, tt.wantX)
			}
			if tt.wantHorizontal && len(horizontal) == 1 && horizontal[0].Points[0].Y != tt.wantY {
				t.Errorf("horizontal axis at y=%g, want %g", horizontal[0].Points[0].Y, tt.wantY)
			}
		})
	}
}
