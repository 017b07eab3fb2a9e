package style

import (
	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/maze"
)

// TriangleCompensation thickens triangle walls, whose shared diagonal edges
// render thinner than axis-aligned ones at equal nominal width.
const TriangleCompensation = 1.15

// breakpoint selects a denominator: cell sizes at or above Min use Above,
// smaller ones use Below.
type breakpoint struct {
	Min   float64
	Above float64
	Below float64
}

var strokeTable = map[maze.Topology]breakpoint{
	maze.Delta:      {Min: 28, Above: 10, Below: 12},
	maze.Orthogonal: {Min: 18, Above: 6, Below: 6},
	maze.Sigma:      {Min: 18, Above: 6, Below: 7},
	maze.Upsilon:    {Min: 28, Above: 12, Below: 16},
	maze.Rhombic:    {Min: 18, Above: 7, Below: 4.8},
}

// StrokeWidth returns the wall line width for topology t at cellSize,
// snapped to the pixel grid. Unknown topologies use the square table.
func StrokeWidth(t maze.Topology, cellSize, pixelScale float64) float64 {
	bp, ok := strokeTable[t]
	if !ok {
		bp = strokeTable[maze.Orthogonal]
	}
	den := bp.Below
	if cellSize >= bp.Min {
		den = bp.Above
	}
	w := geometry.Snap(cellSize/den, pixelScale)
	if t == maze.Delta {
		w = geometry.Snap(w*TriangleCompensation, pixelScale)
	}
	return w
}
