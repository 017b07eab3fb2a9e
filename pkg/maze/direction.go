package maze

import (
	"encoding/json"
	"math/bits"
	"strings"

	"github.com/matzehuels/mazer/pkg/errors"
)

// Direction names one side of a cell.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	UpperLeft
	UpperRight
	LowerLeft
	LowerRight

	numDirections
)

var directionNames = [numDirections]string{
	Up:         "Up",
	Down:       "Down",
	Left:       "Left",
	Right:      "Right",
	UpperLeft:  "UpperLeft",
	UpperRight: "UpperRight",
	LowerLeft:  "LowerLeft",
	LowerRight: "LowerRight",
}

var opposites = [numDirections]Direction{
	Up:         Down,
	Down:       Up,
	Left:       Right,
	Right:      Left,
	UpperLeft:  LowerRight,
	UpperRight: LowerLeft,
	LowerLeft:  UpperRight,
	LowerRight: UpperLeft,
}

// ParseDirection resolves an engine direction name. Names are matched
// exactly as the engine emits them; anything else reports false.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return Direction(d), true
		}
	}
	return 0, false
}

func (d Direction) String() string {
	if d < numDirections {
		return directionNames[d]
	}
	return "Invalid"
}

// MarshalText encodes d by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText decodes a direction name. Unknown names are an error here;
// link sets use Directions, which drops them instead.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", string(b))
	}
	*d = v
	return nil
}

// Valid reports whether d is inside the closed vocabulary.
func (d Direction) Valid() bool { return d < numDirections }

// Opposite returns the direction pointing back across the shared edge.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return opposites[d]
}

// =============================================================================
// Direction Sets
// =============================================================================

// Directions is a set of directions, stored as a bit mask.
type Directions uint8

// NewDirections builds a set from ds.
func NewDirections(ds ...Direction) Directions {
	var s Directions
	for _, d := range ds {
		s = s.With(d)
	}
	return s
}

// ParseDirections builds a set from engine names, dropping unknown names.
func ParseDirections(names []string) Directions {
	var s Directions
	for _, n := range names {
		if d, ok := ParseDirection(n); ok {
			s = s.With(d)
		}
	}
	return s
}

// Has reports whether d is in the set.
func (s Directions) Has(d Direction) bool {
	return d.Valid() && s&(1<<d) != 0
}

// With returns s with d added.
func (s Directions) With(d Direction) Directions {
	if !d.Valid() {
		return s
	}
	return s | 1<<d
}

// Len returns the number of directions in the set.
func (s Directions) Len() int { return bits.OnesCount8(uint8(s)) }

// Slice returns the members in declaration order.
func (s Directions) Slice() []Direction {
	out := make([]Direction, 0, s.Len())
	for d := Direction(0); d < numDirections; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Names returns the engine names of the members in declaration order.
func (s Directions) Names() []string {
	ds := s.Slice()
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func (s Directions) String() string {
	return "[" + strings.Join(s.Names(), " ") + "]"
}

// MarshalJSON encodes the set as a list of names.
func (s Directions) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON decodes a list of names. Unknown names are dropped.
func (s *Directions) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*s = ParseDirections(names)
	return nil
}

// =============================================================================
// Vocabulary & Adjacency
// =============================================================================

var (
	cardinal     = []Direction{Up, Right, Down, Left}
	triNormal    = []Direction{UpperLeft, UpperRight, Down}
	triInverted  = []Direction{Up, LowerLeft, LowerRight}
	hexagonal    = []Direction{Up, UpperRight, LowerRight, Down, LowerLeft, UpperLeft}
	octagonal    = []Direction{Up, UpperRight, Right, LowerRight, Down, LowerLeft, Left, UpperLeft}
	diagonalOnly = []Direction{UpperRight, LowerRight, LowerLeft, UpperLeft}
)

// Vocabulary returns the directions a cell of topology t and shape o can
// have walls or passages in. Unknown topologies use the square vocabulary.
func Vocabulary(t Topology, o Orientation) []Direction {
	switch t {
	case Delta:
		if o == Inverted {
			return triInverted
		}
		return triNormal
	case Sigma:
		return hexagonal
	case Upsilon:
		if o == Square {
			return cardinal
		}
		return octagonal
	case Rhombic:
		return diagonalOnly
	default:
		return cardinal
	}
}

type offset struct{ dx, dy int }

var (
	squareOffsets = map[Direction]offset{
		Up: {0, -1}, Down: {0, 1}, Left: {-1, 0}, Right: {1, 0},
		UpperLeft: {-1, -1}, UpperRight: {1, -1}, LowerLeft: {-1, 1}, LowerRight: {1, 1},
	}
	triOffsets = map[Direction]offset{
		UpperLeft: {-1, 0}, UpperRight: {1, 0}, Down: {0, 1},
		Up: {0, -1}, LowerLeft: {-1, 0}, LowerRight: {1, 0},
	}
	hexEvenOffsets = map[Direction]offset{
		Up: {0, -1}, Down: {0, 1},
		UpperRight: {1, -1}, LowerRight: {1, 0}, LowerLeft: {-1, 0}, UpperLeft: {-1, -1},
	}
	hexOddOffsets = map[Direction]offset{
		Up: {0, -1}, Down: {0, 1},
		UpperRight: {1, 0}, LowerRight: {1, 1}, LowerLeft: {-1, 1}, UpperLeft: {-1, 0},
	}
)

// NeighborOf returns the coordinates across direction d from c, for a cell of
// topology t and shape o. It reports false when d is not in the cell's
// vocabulary.
func NeighborOf(t Topology, o Orientation, c Coordinates, d Direction) (Coordinates, bool) {
	if !inVocabulary(t, o, d) {
		return Coordinates{}, false
	}
	var off offset
	switch t {
	case Delta:
		off = triOffsets[d]
	case Sigma:
		if c.X%2 != 0 {
			off = hexOddOffsets[d]
		} else {
			off = hexEvenOffsets[d]
		}
	default:
		off = squareOffsets[d]
	}
	return c.Add(off.dx, off.dy), true
}

func inVocabulary(t Topology, o Orientation, d Direction) bool {
	for _, v := range Vocabulary(t, o) {
		if v == d {
			return true
		}
	}
	return false
}
