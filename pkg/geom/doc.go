// Package geom maps logical drawing coordinates onto a pixel surface.
//
// # Overview
//
// Figures are generated in a user-defined logical space, the [Viewport],
// and drawn onto a fixed-size pixel [Surface] whose origin is the top-left
// corner with Y growing downward. A [Mapper] holds the four viewport bounds
// and the two surface dimensions and converts between the two spaces with
// a pair of monotonic linear functions:
//
//	px = (x - XMin) / (XMax - XMin) * Width
//	py = (YMax - y) / (YMax - YMin) * Height
//
// The Y axis is inverted so that logical "up" is also pixel "up".
//
// # Usage
//
//	m, err := geom.NewMapper(
//	    geom.Viewport{XMin: -100, XMax: 100, YMin: -100, YMax: 100},
//	    geom.Surface{Width: 800, Height: 600},
//	)
//	if err != nil {
//	    return err // INVALID_VIEWPORT or INVALID_SURFACE
//	}
//	p := m.ToPixel(geom.Pt(0, 0)) // (400, 300)
//
// A Mapper is a small immutable value. It is safe to copy and to share
// between goroutines.
package geom
