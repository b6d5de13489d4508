// Package render turns scenes into output artifacts.
//
// # Overview
//
// The rendering stack has three layers:
//
//   - [draw]: the [draw.Sink] interface every render pass writes to, plus
//     the [draw.Recorder] used for tests and JSON export
//   - [sink]: concrete sinks for PNG (gogpu/gg), SVG (svgo), PDF and JSON
//   - this package: format conversion shared by the sinks
//
// # Format Conversion
//
// [ToPDF] converts an SVG document to PDF using the external rsvg-convert
// tool (from librsvg). PNG output does not need it; it is rasterized in
// process.
//
//	svg := sink.RenderSVG(rec, surface)
//	pdf, err := render.ToPDF(svg)
package render
