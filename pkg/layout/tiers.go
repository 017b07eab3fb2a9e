package layout

import "github.com/matzehuels/mazer/pkg/maze"

// Per-tier multipliers applied to the tier's raw size, indexed by
// maze.CellSize.
var tierMultipliers = map[maze.Topology][4]float64{
	maze.Delta:      {1.7, 2.0, 2.23, 2.42},
	maze.Orthogonal: {1.2, 1.3, 1.65, 1.8},
	maze.Sigma:      {0.5, 0.65, 0.75, 0.8},
	maze.Upsilon:    {2.35, 2.5, 2.85, 3.3},
	maze.Rhombic:    {1.45, 1.65, 1.8, 2.2},
}

// AdjustedCellSize returns the nominal cell size for a tier, used to pick a
// grid dimension before fitting. Unknown topologies use the square table.
func AdjustedCellSize(t maze.Topology, tier maze.CellSize) float64 {
	m, ok := tierMultipliers[t]
	if !ok {
		m = tierMultipliers[maze.Orthogonal]
	}
	return tier.Raw() * m[min(int(tier), len(m)-1)]
}

var paddingBase = map[maze.Topology]float64{
	maze.Delta:      230,
	maze.Orthogonal: 140,
	maze.Sigma:      280,
	maze.Upsilon:    0,
	maze.Rhombic:    0,
}

var paddingRatio = [4]float64{0.35, 0.30, 0.25, 0.20}

// VerticalPadding returns the vertical space kept free around a grid:
// min(base, height·ratio) where base depends on the topology and ratio on
// the tier.
func VerticalPadding(t maze.Topology, tier maze.CellSize, height float64) float64 {
	base := paddingBase[t]
	if _, ok := paddingBase[t]; !ok {
		base = paddingBase[maze.Orthogonal]
	}
	return min(base, height*paddingRatio[min(int(tier), len(paddingRatio)-1)])
}

// Dimensions returns how many columns and rows of the tier's nominal size
// fit on d after vertical padding. Both are at least one.
func Dimensions(t maze.Topology, tier maze.CellSize, d Display) (cols, rows int) {
	s := AdjustedCellSize(t, tier)
	h := d.Height - VerticalPadding(t, tier, d.Height)
	cols = max(1, int(d.Width/s))
	rows = max(1, int(h/s))
	return cols, rows
}
