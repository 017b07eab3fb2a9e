// Package style resolves how a cell is painted: its fill colour and the
// width of its walls.
//
// Fill colour is a fixed priority chain (start, goal, visited, revealed
// solution, heat map, background); see [Resolver.Resolve]. Heat maps use
// one of the built-in ten-shade [Palette] values. Colours are
// [colorful.Color] values so they can be blended for background gradients.
//
// Stroke widths come from per-topology breakpoint tables and are snapped to
// the device pixel grid with the same rule as cell vertices.
package style
