package geometry

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/mazer/pkg/maze"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSnap(t *testing.T) {
	tests := []struct {
		v, scale, want float64
	}{
		{10.2, 1, 10},
		{10.2, 2, 10},
		{10.3, 2, 10.5},
		{10.34, 3, 31.0 / 3},
		{10.2, 0, 10},
		{-0.26, 2, -0.5},
	}
	for _, tt := range tests {
		if got := Snap(tt.v, tt.scale); !near(got, tt.want) {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.v, tt.scale, got, tt.want)
		}
	}
}

func TestExtendLine(t *testing.T) {
	a, b := ExtendLine(Point{0, 0}, Point{10, 0}, 0.5)
	if !near(a.X, -0.5) || !near(b.X, 10.5) || a.Y != 0 || b.Y != 0 {
		t.Errorf("ExtendLine horizontal = %v %v", a, b)
	}

	a, b = ExtendLine(Point{0, 0}, Point{3, 4}, 5)
	if !near(a.X, -3) || !near(a.Y, -4) || !near(b.X, 6) || !near(b.Y, 8) {
		t.Errorf("ExtendLine diagonal = %v %v", a, b)
	}

	p := Point{2, 2}
	a, b = ExtendLine(p, p, 1)
	if a != p || b != p {
		t.Error("degenerate segment should be unchanged")
	}
}

func TestVertexAndWallCardinality(t *testing.T) {
	tests := []struct {
		name string
		topo maze.Topology
		o    maze.Orientation
		want int
	}{
		{"square", maze.Orthogonal, maze.NoOrientation, 4},
		{"triangle normal", maze.Delta, maze.Normal, 3},
		{"triangle inverted", maze.Delta, maze.Inverted, 3},
		{"hexagon", maze.Sigma, maze.NoOrientation, 6},
		{"octagon", maze.Upsilon, maze.Octagon, 8},
		{"inscribed square", maze.Upsilon, maze.Square, 4},
		{"rhombus", maze.Rhombic, maze.NoOrientation, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := For(tt.topo, 30, 2)
			verts := calc.Vertices(tt.o)
			walls := calc.Walls(tt.o)
			if len(verts) != tt.want || len(walls) != tt.want {
				t.Fatalf("vertices=%d walls=%d, want %d", len(verts), len(walls), tt.want)
			}

			// The wall table is a closed outline: every vertex starts and
			// ends exactly one edge.
			starts := make(map[int]int)
			ends := make(map[int]int)
			for _, w := range walls {
				if w.From < 0 || w.From >= len(verts) || w.To < 0 || w.To >= len(verts) {
					t.Fatalf("wall %v out of range", w)
				}
				starts[w.From]++
				ends[w.To]++
			}
			for i := range verts {
				if starts[i]+ends[i] != 2 {
					t.Errorf("vertex %d touches %d edges", i, starts[i]+ends[i])
				}
			}

			// Wall directions match the cell vocabulary.
			vocab := maze.Vocabulary(tt.topo, tt.o)
			for _, d := range vocab {
				if _, ok := WallFor(walls, d); !ok {
					t.Errorf("no wall for %v", d)
				}
			}
		})
	}
}

func TestUnknownTopologyFallsBackToSquare(t *testing.T) {
	calc := For(maze.UnknownTopology, 20, 1)
	if calc.Topology() != maze.Orthogonal {
		t.Errorf("Topology() = %v, want Orthogonal", calc.Topology())
	}

	l := Compute([]maze.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, maze.Topology(42), 10, 1)
	if l.Topology != maze.Orthogonal || l.Width != 20 || l.Height != 10 {
		t.Errorf("layout = %v %vx%v", l.Topology, l.Width, l.Height)
	}
}

func TestEmptyLayout(t *testing.T) {
	for _, topo := range maze.Topologies {
		l := Compute(nil, topo, 25, 3)
		if l.Width != 0 || l.Height != 0 || len(l.Cells) != 0 {
			t.Errorf("%v: empty layout = %vx%v with %d cells", topo, l.Width, l.Height, len(l.Cells))
		}
	}
}

func TestGeometryDeterminism(t *testing.T) {
	cells := gridCells(maze.Sigma, 4, 3)
	a := Compute(cells, maze.Sigma, 17.3, 3)
	b := Compute(cells, maze.Sigma, 17.3, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different layouts")
	}
}

func TestVerticesSnapped(t *testing.T) {
	const scale = 3
	for _, topo := range maze.Topologies {
		l := Compute(gridCells(topo, 3, 3), topo, 21.7, scale)
		for _, c := range l.Cells {
			for _, p := range c.Polygon {
				for _, v := range []float64{p.X, p.Y} {
					if !near(Snap(v, scale), v) {
						t.Fatalf("%v: coordinate %v not on the pixel grid", topo, v)
					}
				}
			}
		}
	}
}

func TestGridSizes(t *testing.T) {
	s := 10.0
	h := s * math.Sqrt(3) / 2
	H := s * math.Sqrt(3)
	d := s * math.Sqrt2
	oct := NewOctagonSquare(s, 1)

	tests := []struct {
		name  string
		calc  Calculator
		cols  int
		rows  int
		w, ht float64
	}{
		{"square", Square{Side: s, Scale: 1}, 4, 3, 40, 30},
		{"triangle", Triangle{Side: s, Scale: 1}, 5, 2, 30, 2 * h},
		{"hexagon", Hexagon{Side: s, Scale: 1}, 3, 2, s * 5, H * 2.5},
		{"octagon", oct, 3, 3, 2*oct.Pitch() + s, 2*oct.Pitch() + s},
		{"rhombus", Rhombus{Side: s, Scale: 1}, 5, 3, 4*d/2 + d, 2*d/2 + d},
		{"zero", Square{Side: s, Scale: 1}, 0, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ht := tt.calc.Size(tt.cols, tt.rows)
			if !near(w, tt.w) || !near(ht, tt.ht) {
				t.Errorf("Size(%d,%d) = %v x %v, want %v x %v", tt.cols, tt.rows, w, ht, tt.w, tt.ht)
			}
		})
	}
}

func TestOctagonSquareRelation(t *testing.T) {
	g := NewOctagonSquare(40, 1)
	if !near(g.Square, 40*(math.Sqrt2-1)) {
		t.Errorf("Square = %v", g.Square)
	}
	// The inscribed square's edge equals the octagon's side length.
	side := 40 - 2*CornerCut(20)
	if !near(side, g.Square) {
		t.Errorf("octagon side %v != square %v", side, g.Square)
	}
	// Pitch equals the octagon's row height oct*sqrt(2)/2.
	if !near(g.Pitch(), 40*math.Sqrt2/2) {
		t.Errorf("Pitch = %v", g.Pitch())
	}
}

func TestHexOffsets(t *testing.T) {
	g := Hexagon{Side: 10, Scale: 1}
	H := g.Height()
	even := g.Offset(maze.Coordinates{X: 2, Y: 1})
	odd := g.Offset(maze.Coordinates{X: 3, Y: 1})
	if !near(even.X, 30) || !near(even.Y, Snap(H, 1)) {
		t.Errorf("even offset = %v", even)
	}
	if !near(odd.X, 45) || !near(odd.Y, Snap(H*1.5, 1)) {
		t.Errorf("odd offset = %v", odd)
	}
}

func TestTriangleOverlapBias(t *testing.T) {
	g := Triangle{Side: 20, Scale: 2}
	v := g.Vertices(maze.Normal)
	if !near(v[0].Y, -0.5) || !near(v[1].X, -0.5) || !near(v[2].X, 20.5) {
		t.Errorf("normal vertices = %v", v)
	}
	v = g.Vertices(maze.Inverted)
	if !near(v[0].X, -0.5) || !near(v[0].Y, -0.5) || !near(v[1].X, 20.5) {
		t.Errorf("inverted vertices = %v", v)
	}
}

// gridCells builds a fully walled cols x rows grid of topology t, with
// checkerboard shapes where the topology has them.
func gridCells(t maze.Topology, cols, rows int) []maze.Cell {
	var cells []maze.Cell
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := maze.Cell{X: x, Y: y, Topology: t}
			switch t {
			case maze.Delta:
				if (x+y)%2 == 0 {
					c.Orientation = maze.Normal
				} else {
					c.Orientation = maze.Inverted
				}
			case maze.Upsilon:
				c.IsSquare = (x+y)%2 == 1
			case maze.Rhombic:
				if (x+y)%2 == 1 {
					continue
				}
			}
			cells = append(cells, c)
		}
	}
	return cells
}
