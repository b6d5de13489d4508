// Package scene composes a complete drawing from a [Request].
//
// [Render] is the single entry point of the renderer. It validates the
// request, clears the sink, optionally lays out the coordinate grid and then
// places Count figures, each with a kind, a logical center, a size and a
// stroke color sampled from the caller's random source:
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	rec := draw.NewRecorder()
//	err := scene.Render(rec, geom.DefaultSurface, scene.DefaultRequest(), rng)
//
// # Randomness
//
// The random stream is consumed in a fixed order per figure: the kind index,
// the two center draws, the size, then the red, green and blue channels.
// The grid consumes nothing. Rendering the same request twice with
// generators built from the same seed therefore issues identical command
// sequences, which is how the pipeline makes every export match the
// displayed layout.
//
// # Placement
//
// With density d > 0 centers are drawn from a square of side (1-d) times the
// viewport extent around the viewport center; d = 1 stacks every figure on
// the center. With d = 0 centers are uniform over the whole viewport.
// [Collector] summarizes placements (mean, spread, Kolmogorov-Smirnov
// distance to uniform) for the stats command.
package scene
