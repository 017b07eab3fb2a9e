package geometry

import (
	"math"

	"github.com/matzehuels/mazer/pkg/maze"
)

// OctagonSquare is the truncated square tiling: octagons and squares in a
// checkerboard. Every cell occupies an Octagon-sized slot; square cells are
// centred in theirs.
type OctagonSquare struct {
	Octagon float64
	Square  float64
	Scale   float64
}

// NewOctagonSquare derives the square size from the octagon size so the
// square's edge equals the octagon's side.
func NewOctagonSquare(octagon, scale float64) OctagonSquare {
	return OctagonSquare{Octagon: octagon, Square: SquareForOctagon(octagon), Scale: scale}
}

// SquareForOctagon returns octagon * (sqrt(2) - 1).
func SquareForOctagon(octagon float64) float64 {
	return octagon * (math.Sqrt2 - 1)
}

var octagonWalls = []Wall{
	{maze.Up, 0, 1},
	{maze.UpperRight, 1, 2},
	{maze.Right, 2, 3},
	{maze.LowerRight, 3, 4},
	{maze.Down, 4, 5},
	{maze.LowerLeft, 5, 6},
	{maze.Left, 6, 7},
	{maze.UpperLeft, 7, 0},
}

func (OctagonSquare) Topology() maze.Topology { return maze.Upsilon }

// Pitch is the distance between adjacent slot origins.
func (g OctagonSquare) Pitch() float64 {
	return (g.Octagon + g.Square) / 2
}

// CornerCut returns k = 2r/(2+sqrt(2)) for half-footprint r.
func CornerCut(r float64) float64 {
	return 2 * r / (2 + math.Sqrt2)
}

func (g OctagonSquare) Vertices(o maze.Orientation) []Point {
	if o == maze.Square {
		return squareVertices((g.Octagon-g.Square)/2, g.Square, g.Scale)
	}
	sc := g.Scale
	c := g.Octagon / 2
	r := g.Octagon/2 + Overlap(sc)
	k := CornerCut(r)
	pts := []Point{
		{c - r + k, c - r},
		{c + r - k, c - r},
		{c + r, c - r + k},
		{c + r, c + r - k},
		{c + r - k, c + r},
		{c - r + k, c + r},
		{c - r, c + r - k},
		{c - r, c - r + k},
	}
	for i := range pts {
		pts[i] = SnapPoint(pts[i], sc)
	}
	return pts
}

func (OctagonSquare) Walls(o maze.Orientation) []Wall {
	if o == maze.Square {
		return squareWalls
	}
	return octagonWalls
}

func (g OctagonSquare) Offset(c maze.Coordinates) Point {
	p := g.Pitch()
	return Point{X: Snap(float64(c.X)*p, g.Scale), Y: Snap(float64(c.Y)*p, g.Scale)}
}

func (g OctagonSquare) Size(cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	p := g.Pitch()
	return float64(cols-1)*p + g.Octagon, float64(rows-1)*p + g.Octagon
}
