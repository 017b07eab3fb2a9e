package geometry

import "github.com/matzehuels/mazer/pkg/maze"

// Layout is the drawable geometry of a whole snapshot.
type Layout struct {
	Topology   maze.Topology `json:"topology"`
	CellSize   float64       `json:"cell_size"`
	SquareSize float64       `json:"square_size,omitempty"`
	PixelScale float64       `json:"pixel_scale"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Cells      []CellShape   `json:"cells"`
}

// CellShape is one cell's outline and the walls to stroke, in absolute
// grid coordinates.
type CellShape struct {
	Cell    maze.Cell        `json:"cell"`
	Shape   maze.Orientation `json:"shape"`
	Origin  Point            `json:"origin"`
	Polygon []Point          `json:"polygon"`
	Walls   []Segment        `json:"walls"`
}

// Segment is one wall stroke, already extended past its corners.
type Segment struct {
	Direction maze.Direction `json:"direction"`
	A         Point          `json:"a"`
	B         Point          `json:"b"`
}

// Centroid returns the mean of the polygon's vertices.
func (c CellShape) Centroid() Point {
	var p Point
	if len(c.Polygon) == 0 {
		return c.Origin
	}
	for _, v := range c.Polygon {
		p.X += v.X
		p.Y += v.Y
	}
	n := float64(len(c.Polygon))
	return Point{X: p.X / n, Y: p.Y / n}
}

// Compute lays out cells for topology t at the given cell size and pixel
// scale. An empty cell list yields a zero-size layout.
func Compute(cells []maze.Cell, t maze.Topology, cellSize, pixelScale float64) Layout {
	return ComputeSnapshot(maze.NewSnapshot(cells), t, cellSize, pixelScale)
}

// ComputeSnapshot is Compute over an already indexed snapshot.
func ComputeSnapshot(s *maze.Snapshot, t maze.Topology, cellSize, pixelScale float64) Layout {
	if pixelScale <= 0 {
		pixelScale = 1
	}
	calc := For(t, cellSize, pixelScale)
	l := Layout{
		Topology:   calc.Topology(),
		CellSize:   cellSize,
		PixelScale: pixelScale,
	}
	if oct, ok := calc.(OctagonSquare); ok {
		l.SquareSize = oct.Square
	}
	if s.Empty() {
		l.Cells = []CellShape{}
		return l
	}

	l.Width, l.Height = calc.Size(s.Columns(), s.Rows())
	ext := LineExtension(pixelScale)
	cells := s.Cells()
	l.Cells = make([]CellShape, 0, len(cells))
	for _, cell := range cells {
		l.Cells = append(l.Cells, shapeCell(s, calc, cell, ext))
	}
	return l
}

func shapeCell(s *maze.Snapshot, calc Calculator, cell maze.Cell, ext float64) CellShape {
	topo := calc.Topology()
	as := cell
	as.Topology = topo
	shape := as.Shape()

	origin := calc.Offset(cell.Coordinates())
	local := calc.Vertices(shape)
	poly := make([]Point, len(local))
	for i, v := range local {
		poly[i] = v.Add(origin)
	}

	cs := CellShape{Cell: cell, Shape: shape, Origin: origin, Polygon: poly}
	for _, w := range calc.Walls(shape) {
		if !DrawWall(s, topo, as, w.Direction) {
			continue
		}
		a, b := ExtendLine(poly[w.From], poly[w.To], ext)
		cs.Walls = append(cs.Walls, Segment{Direction: w.Direction, A: a, B: b})
	}
	return cs
}

// DrawWall decides whether the edge of cell facing d is a wall.
//
// A missing neighbour always yields a wall. Hexagons draw the wall only when
// neither side links across it; every other topology draws it when the cell
// itself does not link.
func DrawWall(s *maze.Snapshot, t maze.Topology, cell maze.Cell, d maze.Direction) bool {
	cell.Topology = t
	nc, ok := maze.NeighborOf(t, cell.Shape(), cell.Coordinates(), d)
	if !ok {
		return true
	}
	neighbor, ok := s.Lookup(nc)
	if !ok {
		return true
	}
	if t == maze.Sigma {
		return !cell.Links(d) && !neighbor.Links(d.Opposite())
	}
	return !cell.Links(d)
}
