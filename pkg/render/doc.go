// Package render turns laid-out mazes into files.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG), in this package
//   - Maze drawings as SVG, JSON, PNG and PDF, in [sink]
//   - Passage graphs as Graphviz DOT and SVG, in [passage]
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg. Both sinks share them.
//
//	svg := sink.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Install librsvg with `brew install librsvg` (macOS) or
// `apt install librsvg2-bin` (Linux). [Available] reports whether it is on
// the PATH.
//
// [sink]: github.com/matzehuels/mazer/pkg/render/sink
// [passage]: github.com/matzehuels/mazer/pkg/render/passage
package render
