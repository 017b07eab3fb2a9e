package geometry

import "github.com/matzehuels/mazer/pkg/maze"

// Wall maps one direction to the vertex indices of its edge.
type Wall struct {
	Direction maze.Direction
	From, To  int
}

// Calculator is the geometry of one topology at a fixed cell size and
// pixel scale.
type Calculator interface {
	// Topology is the topology this calculator renders.
	Topology() maze.Topology

	// Vertices returns the local outline of a cell with shape o.
	Vertices(o maze.Orientation) []Point

	// Walls returns the wall table for shape o. It has one entry per vertex.
	Walls(o maze.Orientation) []Wall

	// Offset returns the placement of the local frame of the cell at c.
	Offset(c maze.Coordinates) Point

	// Size returns the total grid size for cols x rows cells.
	Size(cols, rows int) (width, height float64)
}

// For returns the calculator for topology t. Unknown topologies get square
// geometry.
func For(t maze.Topology, cellSize, pixelScale float64) Calculator {
	if pixelScale <= 0 {
		pixelScale = 1
	}
	switch t {
	case maze.Delta:
		return Triangle{Side: cellSize, Scale: pixelScale}
	case maze.Sigma:
		return Hexagon{Side: cellSize, Scale: pixelScale}
	case maze.Upsilon:
		return NewOctagonSquare(cellSize, pixelScale)
	case maze.Rhombic:
		return Rhombus{Side: cellSize, Scale: pixelScale}
	default:
		return Square{Side: cellSize, Scale: pixelScale}
	}
}

// WallFor looks up the edge for direction d in a wall table.
func WallFor(walls []Wall, d maze.Direction) (Wall, bool) {
	for _, w := range walls {
		if w.Direction == d {
			return w, true
		}
	}
	return Wall{}, false
}
