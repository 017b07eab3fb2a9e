package maze

import "fmt"

// Coordinates identifies a cell by column (X) and row (Y).
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c shifted by (dx, dy).
func (c Coordinates) Add(dx, dy int) Coordinates {
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CoordinateSet is a set of cell coordinates.
type CoordinateSet map[Coordinates]struct{}

// Contains reports whether c is in the set. A nil set contains nothing.
func (s CoordinateSet) Contains(c Coordinates) bool {
	_, ok := s[c]
	return ok
}

// Add inserts c.
func (s CoordinateSet) Add(c Coordinates) { s[c] = struct{}{} }

// Clone returns an independent copy.
func (s CoordinateSet) Clone() CoordinateSet {
	out := make(CoordinateSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}
