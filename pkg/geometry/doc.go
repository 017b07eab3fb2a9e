// Package geometry computes drawable cell outlines for every maze topology.
//
// Each topology has one canonical [Calculator] that knows three things:
//
//   - the local vertex list of a cell (its outline in a frame whose origin is
//     the cell's top-left placement point)
//   - the wall table, mapping each direction of the cell's vocabulary to a
//     pair of vertex indices
//   - the grid packing: where a cell's frame sits and how large the whole
//     grid is
//
// All coordinates are snapped to the device pixel grid with [Snap] and are
// biased outward by one device pixel so independently filled shapes overlap
// instead of leaving hairline seams. Wall segments are lengthened by half a
// device pixel at both ends with [ExtendLine] so corners close.
//
// Everything in this package is a pure function of its arguments. Display
// metrics (the pixel scale) are passed in explicitly.
//
// # Usage
//
//	l := geometry.Compute(snap.Cells(), maze.Sigma, 24, 3)
//	for _, c := range l.Cells {
//	    fill(c.Polygon)
//	    for _, w := range c.Walls {
//	        stroke(w.A, w.B)
//	    }
//	}
//
// Unknown topologies fall back to square geometry.
package geometry
