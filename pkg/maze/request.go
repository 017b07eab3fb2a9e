package maze

import (
	"strings"

	"github.com/matzehuels/mazer/pkg/errors"
)

// CellSize is a magnitude tier for the base geometry unit.
type CellSize uint8

const (
	Tiny CellSize = iota
	Small
	Medium
	Large
)

var cellSizeNames = [...]string{"tiny", "small", "medium", "large"}

// CellSizes lists the tiers from smallest to largest.
var CellSizes = []CellSize{Tiny, Small, Medium, Large}

// Raw returns the tier's base numeric value.
func (s CellSize) Raw() float64 {
	return float64(11 + int(s))
}

func (s CellSize) String() string {
	if int(s) < len(cellSizeNames) {
		return cellSizeNames[s]
	}
	return "unknown"
}

// ParseCellSize resolves a tier by name.
func ParseCellSize(name string) (CellSize, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range cellSizeNames {
		if v == n {
			return CellSize(i), true
		}
	}
	return Medium, false
}

// Algorithm names a generation algorithm understood by the engine.
type Algorithm string

const (
	AldousBroder         Algorithm = "AldousBroder"
	BinaryTree           Algorithm = "BinaryTree"
	Ellers               Algorithm = "Ellers"
	GrowingTreeNewest    Algorithm = "GrowingTreeNewest"
	GrowingTreeRandom    Algorithm = "GrowingTreeRandom"
	HuntAndKill          Algorithm = "HuntAndKill"
	Kruskals             Algorithm = "Kruskals"
	Prims                Algorithm = "Prims"
	RecursiveBacktracker Algorithm = "RecursiveBacktracker"
	RecursiveDivision    Algorithm = "RecursiveDivision"
	Sidewinder           Algorithm = "Sidewinder"
	Wilsons              Algorithm = "Wilsons"
)

// Algorithms lists every algorithm the engine accepts.
var Algorithms = []Algorithm{
	AldousBroder, BinaryTree, Ellers, GrowingTreeNewest, GrowingTreeRandom, HuntAndKill,
	Kruskals, Prims, RecursiveBacktracker, RecursiveDivision, Sidewinder, Wilsons,
}

// MaxCaptureDimension bounds width and height when generation steps are captured.
const MaxCaptureDimension = 100

// Request is the payload sent to the engine's generate call.
type Request struct {
	MazeType     string    `json:"maze_type"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Algorithm    Algorithm `json:"algorithm"`
	CaptureSteps bool      `json:"capture_steps"`
}

// Validate applies the engine's request rules.
func (r Request) Validate() error {
	if _, ok := ParseTopology(r.MazeType); !ok {
		return errors.New(errors.ErrCodeInvalidTopology, "unknown maze type %q", r.MazeType)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "width and height must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.CaptureSteps && (r.Width > MaxCaptureDimension || r.Height > MaxCaptureDimension) {
		return errors.New(errors.ErrCodeInvalidRequest,
			"width and height must be at most %d when capturing steps", MaxCaptureDimension)
	}
	for _, a := range Algorithms {
		if a == r.Algorithm {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidRequest, "unknown algorithm %q", r.Algorithm)
}
