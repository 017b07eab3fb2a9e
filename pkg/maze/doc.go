// Package maze defines the cell snapshot model consumed by the renderer.
//
// A maze engine (external to this module) produces a flat list of cells after
// every generate or move. Each [Cell] carries its grid coordinates, the
// directions in which it has an open passage, its distance from the start
// cell and a handful of state flags. This package turns that list into a
// [Snapshot], an immutable value with an O(1) coordinate index so geometry
// and colour routines can look up neighbours cheaply.
//
// # Topologies
//
// Five tilings are supported, named after the engine's tags:
//
//   - [Orthogonal]: square cells
//   - [Delta]: interlocking triangles (normal and inverted)
//   - [Sigma]: flat-topped hexagons in odd-q columns
//   - [Upsilon]: octagons and squares in a checkerboard
//   - [Rhombic]: diamonds (squares rotated by 45 degrees)
//
// Unknown tags decode to [UnknownTopology]; renderers fall back to square
// geometry for it.
//
// # Directions
//
// [Direction] is a closed set of eight names. [Directions] is a bit set of
// them and is what a cell's linked passages decode into. Names outside the
// vocabulary are dropped while decoding, so a malformed snapshot still renders.
//
// # Snapshots
//
//	snap, err := maze.ReadSnapshotFile("maze.json")
//	if err != nil {
//	    return err
//	}
//	cell, ok := snap.Lookup(maze.Coordinates{X: 2, Y: 1})
//	next, ok := snap.Neighbor(cell, maze.Right)
//
// Snapshots are never mutated in place. A new engine result replaces the
// previous snapshot wholesale.
package maze
