// Package sink renders a computed [geometry.Layout] into output formats.
//
//   - SVG: filled cell polygons, wall strokes, optional solution line
//   - JSON: the same geometry with resolved fills, for external renderers
//   - PNG and PDF: SVG converted with rsvg-convert
//
// Fills come from a [style.Resolver] and the revealed set; stroke width
// defaults to [style.StrokeWidth] for the layout's topology and cell size.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithResolver(style.NewResolver(opts)),
//	    sink.WithRevealed(animator),
//	    sink.WithSolutionLine(),
//	)
//
// [geometry.Layout]: github.com/matzehuels/mazer/pkg/geometry.Layout
// [style.Resolver]: github.com/matzehuels/mazer/pkg/style.Resolver
// [style.StrokeWidth]: github.com/matzehuels/mazer/pkg/style.StrokeWidth
package sink
