package maze

import "strings"

// Orientation discriminates cell shapes within one topology.
type Orientation uint8

const (
	// NoOrientation is used by topologies with a single cell shape.
	NoOrientation Orientation = iota
	Normal                    // triangle with its apex up
	Inverted                  // triangle with its apex down
	Octagon
	Square
)

var orientationNames = [...]string{"", "Normal", "Inverted", "Octagon", "Square"}

// ParseOrientation resolves an engine orientation tag (case-insensitive).
// Unknown tags map to NoOrientation.
func ParseOrientation(name string) Orientation {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range orientationNames {
		if i > 0 && strings.ToLower(v) == n {
			return Orientation(i)
		}
	}
	return NoOrientation
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return ""
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error {
	*o = ParseOrientation(string(b))
	return nil
}

// Cell is one engine cell. Cells are values and are never mutated after a
// snapshot is built.
type Cell struct {
	X              int         `json:"x"`
	Y              int         `json:"y"`
	Topology       Topology    `json:"mazeType"`
	Linked         Directions  `json:"linked"`
	Distance       int         `json:"distance"`
	IsStart        bool        `json:"isStart"`
	IsGoal         bool        `json:"isGoal"`
	IsActive       bool        `json:"isActive"`
	IsVisited      bool        `json:"isVisited"`
	HasBeenVisited bool        `json:"hasBeenVisited"`
	OnSolutionPath bool        `json:"onSolutionPath"`
	Orientation    Orientation `json:"orientation"`
	IsSquare       bool        `json:"isSquare,omitempty"`
}

// Coordinates returns the cell's grid position.
func (c Cell) Coordinates() Coordinates {
	return Coordinates{X: c.X, Y: c.Y}
}

// Shape resolves the effective orientation for the cell's topology.
// Triangles that are not explicitly normal are inverted. Upsilon cells are
// squares when flagged either way, octagons otherwise.
func (c Cell) Shape() Orientation {
	switch c.Topology {
	case Delta:
		if c.Orientation == Normal {
			return Normal
		}
		return Inverted
	case Upsilon:
		if c.IsSquare || c.Orientation == Square {
			return Square
		}
		return Octagon
	default:
		return NoOrientation
	}
}

// Links reports whether the cell has an open passage toward d.
func (c Cell) Links(d Direction) bool {
	return c.Linked.Has(d)
}

// Vocabulary returns the directions valid for this cell.
func (c Cell) Vocabulary() []Direction {
	return Vocabulary(c.Topology, c.Shape())
}
