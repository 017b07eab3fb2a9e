package geometry

import (
	"math"

	"github.com/matzehuels/mazer/pkg/maze"
)

// Triangle is equilateral triangle geometry. Adjacent columns interlock by
// half a side, alternating normal (apex up) and inverted cells.
type Triangle struct {
	Side  float64
	Scale float64
}

var (
	triangleNormalWalls = []Wall{
		{maze.UpperLeft, 0, 1},
		{maze.UpperRight, 0, 2},
		{maze.Down, 1, 2},
	}
	triangleInvertedWalls = []Wall{
		{maze.Up, 0, 1},
		{maze.LowerLeft, 0, 2},
		{maze.LowerRight, 1, 2},
	}
)

func (Triangle) Topology() maze.Topology { return maze.Delta }

// Height is side * sqrt(3) / 2.
func (g Triangle) Height() float64 {
	return g.Side * math.Sqrt(3) / 2
}

func (g Triangle) Vertices(o maze.Orientation) []Point {
	s, h, sc := g.Side, g.Height(), g.Scale
	ov := Overlap(sc)
	if o == maze.Normal {
		return []Point{
			{Snap(s/2, sc), Snap(0, sc) - ov},
			{Snap(0, sc) - ov, Snap(h, sc) + ov},
			{Snap(s, sc) + ov, Snap(h, sc) + ov},
		}
	}
	return []Point{
		{Snap(0, sc) - ov, Snap(0, sc) - ov},
		{Snap(s, sc) + ov, Snap(0, sc) - ov},
		{Snap(s/2, sc), Snap(h, sc) + ov},
	}
}

func (Triangle) Walls(o maze.Orientation) []Wall {
	if o == maze.Normal {
		return triangleNormalWalls
	}
	return triangleInvertedWalls
}

func (g Triangle) Offset(c maze.Coordinates) Point {
	return Point{
		X: Snap(float64(c.X)*g.Side/2, g.Scale),
		Y: Snap(float64(c.Y)*g.Height(), g.Scale),
	}
}

func (g Triangle) Size(cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return float64(cols+1) * g.Side / 2, float64(rows) * g.Height()
}
