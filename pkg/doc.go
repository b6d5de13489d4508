// Package pkg provides the core libraries for shapescatter.
//
// # Overview
//
// Shapescatter draws a random scatter of simple figures (lines, circles,
// rectangles, triangles, parabolas and trapezoids) on a pixel canvas,
// optionally over a coordinate grid. The pkg directory is organized into
// three areas:
//
//  1. Core - coordinate mapping, figure generation and scene composition
//  2. Rendering - draw sinks and output encoders
//  3. Infrastructure - the pipeline, caching, errors and observability
//
// # Architecture
//
// The typical data flow through shapescatter:
//
//	Request + seed
//	     ↓
//	[scene] package (validate, place figures, draw grid)
//	     ↓
//	[figure] package (kind → primitive in pixel space)
//	     ↓
//	[render/draw] sink (recorder, raster, SVG)
//	     ↓
//	PNG/SVG/PDF/JSON output
//
// # Quick Start
//
// Draw a scene and encode it as SVG:
//
//	import (
//	    "github.com/matzehuels/shapescatter/pkg/geom"
//	    "github.com/matzehuels/shapescatter/pkg/render/draw"
//	    "github.com/matzehuels/shapescatter/pkg/render/sink"
//	    "github.com/matzehuels/shapescatter/pkg/scene"
//	)
//
//	rec := draw.NewRecorder()
//	req := scene.DefaultRequest()
//	if err := scene.Render(rec, geom.DefaultSurface, req, scene.NewRand(42)); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(rec, geom.DefaultSurface)
//
// # Main Packages
//
// ## Core
//
// [geom] - Logical viewport, pixel surface and the linear mapping between
// them. The y axis is flipped so logical "up" is up on screen.
//
// [figure] - The closed set of figure kinds and their generation rules.
// Each kind turns a center and size into one drawing primitive.
//
// [scene] - Request validation, the coordinate grid, figure placement with
// density-driven clustering, and placement statistics.
//
// ## Rendering
//
// [render/draw] - The Sink interface every backend implements, colors, and
// the Recorder that captures a drawing for replay.
//
// [render/sink] - Output backends: raster PNG, SVG, JSON recordings and PDF
// (via [render]).
//
// [render] - Format conversion utilities (SVG to PDF).
//
// ## Infrastructure
//
// [pipeline] - Draw once, encode every requested format, with caching. Used
// by the CLI, the form and the HTTP server so all entry points agree.
//
// [cache] - Artifact caches: file, Redis and a no-op cache.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/scene/...    # Specific package
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/geom
// [figure]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/figure
// [scene]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/scene
// [render/draw]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/render/draw
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/render/sink
// [render]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/shapescatter/pkg/buildinfo
package pkg
