// Package figure turns a placed figure into pixel-space stroke primitives.
//
// # Kinds
//
// The set of figures is closed: [Line], [Circle], [Rectangle], [Triangle],
// [Parabola] and [Trapezoid]. Each [Kind] has a stable lowercase name used
// by flags, config files and the HTTP API, and a display label for the
// interactive form.
//
// # Generation
//
// [Generate] maps a kind, a logical center and a logical size through a
// [geom.Mapper] and returns exactly one [Primitive]:
//
//	Line       segment (cx-s, cy) -> (cx+s, cy+s)
//	Circle     oval inscribed in the box [cx-s, cx+s] x [cy-s, cy+s]
//	Rectangle  outline of the same box
//	Triangle   apex (cx, cy-s), base (cx-s, cy+s) and (cx+s, cy+s)
//	Parabola   y = cy + (x-cx)^2/s sampled at 31 points over [cx-s, cx+s]
//	Trapezoid  (cx-s, cy+s), (cx-0.6s, cy-s), (cx+0.6s, cy-s), (cx+s, cy+s)
//
// Generation is a pure function: it consumes no randomness and holds no
// state. Boxes are normalized to non-negative extents before they leave
// this package, so every sink sees the same orientation.
//
// [Primitive] is a closed sum type ([Segment], [Oval], [Rect], [Polygon],
// [Polyline]); [Issue] sends one to a [draw.Sink].
package figure
