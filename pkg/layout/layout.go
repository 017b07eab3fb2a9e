// Package layout sizes cells so that a maze of a given column and row count
// fits an injected display.
//
// Display metrics are always passed in as a [Display]; nothing here reads
// global screen state. Square, octagon and width-bound rhombic grids fit
// the display width exactly; triangle grids fit it minus the side padding.
package layout

import (
	"math"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/maze"
)

// Display describes the drawable area in points and its pixel density.
type Display struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Scale  float64 `json:"scale" toml:"scale"`
}

// Validate checks that the metrics are finite, positive and Scale >= 1.
func (d Display) Validate() error {
	return errors.ValidateDisplay(d.Width, d.Height, d.Scale)
}

// RhombicChrome is the vertical space reserved for controls above and below
// a rhombic grid.
const RhombicChrome = 150.0

// Metrics is the result of fitting a grid to a display.
type Metrics struct {
	Topology   maze.Topology `json:"topology"`
	Columns    int           `json:"columns"`
	Rows       int           `json:"rows"`
	CellSize   float64       `json:"cell_size"`
	SquareSize float64       `json:"square_size,omitempty"`
	Padding    float64       `json:"padding,omitempty"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Scale      float64       `json:"scale"`
}

// Fit validates d and computes the metrics for a cols x rows grid. Unknown
// topologies are sized as square grids.
func Fit(t maze.Topology, cols, rows int, d Display) (Metrics, error) {
	if err := d.Validate(); err != nil {
		return Metrics{}, err
	}
	if cols <= 0 || rows <= 0 {
		return Metrics{}, errors.New(errors.ErrCodeInvalidInput, "grid must have at least one column and row, got %dx%d", cols, rows)
	}
	if !t.Known() {
		t = maze.Orthogonal
	}

	m := Metrics{Topology: t, Columns: cols, Rows: rows, Scale: d.Scale}
	m.CellSize = CellSize(t, cols, rows, d)
	switch t {
	case maze.Delta:
		m.Padding = TrianglePadding(d)
	case maze.Upsilon:
		m.SquareSize = geometry.SquareForOctagon(m.CellSize)
	}
	m.Width, m.Height = geometry.For(t, m.CellSize, d.Scale).Size(cols, rows)
	return m, nil
}

// CellSize returns the cell size that fits cols columns (and, for rhombic
// grids, rows rows) on d. For octagon grids the result is the octagon size.
// A non-positive column count is treated as one.
func CellSize(t maze.Topology, cols, rows int, d Display) float64 {
	cols, rows = max(cols, 1), max(rows, 1)
	w := d.Width
	switch t {
	case maze.Sigma:
		return w / (1.5*float64(cols-1) + 1)
	case maze.Delta:
		p := TrianglePadding(d)
		return (w - 2*p) * 2 / float64(cols+1)
	case maze.Upsilon:
		return OctagonSize(cols, d)
	case maze.Rhombic:
		byWidth := w * math.Sqrt2 / float64(cols+1)
		byHeight := (d.Height - RhombicChrome) * math.Sqrt2 / float64(rows+1)
		if byHeight <= 0 {
			return byWidth
		}
		return min(byWidth, byHeight)
	default:
		return w / float64(cols)
	}
}

// OctagonSize returns the octagon size whose packed width equals d.Width.
// The matching square is geometry.SquareForOctagon of the result.
func OctagonSize(cols int, d Display) float64 {
	cols = max(cols, 1)
	return d.Width / (float64(cols-1)*math.Sqrt2/2 + 1)
}
