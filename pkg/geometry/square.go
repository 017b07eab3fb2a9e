package geometry

import "github.com/matzehuels/mazer/pkg/maze"

// Square is axis-aligned square geometry.
type Square struct {
	Side  float64
	Scale float64
}

var squareWalls = []Wall{
	{maze.Up, 0, 1},
	{maze.Right, 1, 2},
	{maze.Down, 2, 3},
	{maze.Left, 3, 0},
}

func (Square) Topology() maze.Topology { return maze.Orthogonal }

// Vertices returns top-left, top-right, bottom-right, bottom-left.
func (g Square) Vertices(maze.Orientation) []Point {
	return squareVertices(0, g.Side, g.Scale)
}

func squareVertices(inset, side, scale float64) []Point {
	o := Overlap(scale)
	lo := Snap(inset, scale) - o
	hi := Snap(inset+side, scale) + o
	return []Point{{lo, lo}, {hi, lo}, {hi, hi}, {lo, hi}}
}

func (Square) Walls(maze.Orientation) []Wall { return squareWalls }

func (g Square) Offset(c maze.Coordinates) Point {
	return Point{X: Snap(float64(c.X)*g.Side, g.Scale), Y: Snap(float64(c.Y)*g.Side, g.Scale)}
}

func (g Square) Size(cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return float64(cols) * g.Side, float64(rows) * g.Side
}
