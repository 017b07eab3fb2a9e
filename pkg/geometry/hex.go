package geometry

import (
	"math"

	"github.com/matzehuels/mazer/pkg/maze"
)

// Hexagon is flat-topped hexagon geometry in odd-q columns: odd columns sit
// half a hexagon lower than even ones.
type Hexagon struct {
	Side  float64
	Scale float64
}

var hexWalls = []Wall{
	{maze.Up, 0, 1},
	{maze.UpperRight, 1, 2},
	{maze.LowerRight, 2, 3},
	{maze.Down, 3, 4},
	{maze.LowerLeft, 4, 5},
	{maze.UpperLeft, 5, 0},
}

func (Hexagon) Topology() maze.Topology { return maze.Sigma }

// Height is the flat-to-flat distance, side * sqrt(3).
func (g Hexagon) Height() float64 {
	return g.Side * math.Sqrt(3)
}

// Vertices returns the outline clockwise from the top-left corner. The frame
// is 2*side wide and Height tall.
func (g Hexagon) Vertices(maze.Orientation) []Point {
	s := g.Side
	h := math.Sqrt(3)
	unit := [6]Point{
		{0.5, 0}, {1.5, 0}, {2, h / 2},
		{1.5, h}, {0.5, h}, {0, h / 2},
	}
	centre := Point{X: s, Y: h / 2 * s}
	ov := Overlap(g.Scale)
	pts := make([]Point, len(unit))
	for i, u := range unit {
		p := pushOutward(Point{X: u.X * s, Y: u.Y * s}, centre, ov)
		pts[i] = SnapPoint(p, g.Scale)
	}
	return pts
}

func (Hexagon) Walls(maze.Orientation) []Wall { return hexWalls }

func (g Hexagon) Offset(c maze.Coordinates) Point {
	H := g.Height()
	y := H * float64(c.Y)
	if c.X%2 != 0 {
		y += H / 2
	}
	return Point{X: Snap(1.5*g.Side*float64(c.X), g.Scale), Y: Snap(y, g.Scale)}
}

func (g Hexagon) Size(cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return g.Side * (1.5*float64(cols) + 0.5), g.Height() * (float64(rows) + 0.5)
}
