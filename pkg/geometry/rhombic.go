package geometry

import (
	"math"

	"github.com/matzehuels/mazer/pkg/maze"
)

// Rhombus is diamond geometry: squares of the given side rotated by 45
// degrees. Cells step by half a diagonal on both axes, so only cells with
// x+y even are expected.
type Rhombus struct {
	Side  float64
	Scale float64
}

var rhombusWalls = []Wall{
	{maze.UpperRight, 0, 1},
	{maze.LowerRight, 1, 2},
	{maze.LowerLeft, 2, 3},
	{maze.UpperLeft, 3, 0},
}

func (Rhombus) Topology() maze.Topology { return maze.Rhombic }

// Diagonal is the bounding box edge, side * sqrt(2).
func (g Rhombus) Diagonal() float64 {
	return g.Side * math.Sqrt2
}

// Vertices returns top, right, bottom, left, each pushed one device pixel
// outward along its own axis.
func (g Rhombus) Vertices(maze.Orientation) []Point {
	d, sc := g.Diagonal(), g.Scale
	ov := Overlap(sc)
	return []Point{
		{Snap(d/2, sc), Snap(0, sc) - ov},
		{Snap(d, sc) + ov, Snap(d/2, sc)},
		{Snap(d/2, sc), Snap(d, sc) + ov},
		{Snap(0, sc) - ov, Snap(d/2, sc)},
	}
}

func (Rhombus) Walls(maze.Orientation) []Wall { return rhombusWalls }

func (g Rhombus) Offset(c maze.Coordinates) Point {
	half := g.Diagonal() / 2
	return Point{X: Snap(float64(c.X)*half, g.Scale), Y: Snap(float64(c.Y)*half, g.Scale)}
}

// Size is maxIndex * half-diagonal + one diagonal on each axis.
func (g Rhombus) Size(cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	d := g.Diagonal()
	return float64(cols-1)*d/2 + d, float64(rows-1)*d/2 + d
}
