package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
)

// Topology resolves the topology to draw s with: the override in opts if
// set, else the snapshot's own. Unknown topologies fall back to Orthogonal.
func Topology(s *maze.Snapshot, opts Options) maze.Topology {
	if t, ok := maze.ParseTopology(opts.Topology); ok {
		return t
	}
	if t := s.Topology(); t.Known() {
		return t
	}
	return maze.Orthogonal
}

// Fit computes the display metrics for s. A fixed opts.CellSize bypasses
// the display fit but still reports the resulting grid size.
func Fit(s *maze.Snapshot, opts Options) (layout.Metrics, error) {
	if err := opts.ValidateForGeometry(); err != nil {
		return layout.Metrics{}, err
	}
	t := Topology(s, opts)
	cols, rows := max(s.Columns(), 1), max(s.Rows(), 1)
	if opts.CellSize <= 0 {
		return layout.Fit(t, cols, rows, opts.Display())
	}

	m := layout.Metrics{Topology: t, Columns: cols, Rows: rows, CellSize: opts.CellSize, Scale: opts.Scale}
	if t == maze.Upsilon {
		m.SquareSize = geometry.SquareForOctagon(opts.CellSize)
	}
	m.Width, m.Height = geometry.For(t, opts.CellSize, opts.Scale).Size(cols, rows)
	return m, nil
}

// ComputeGeometry fits s to the display and lays out every cell.
func ComputeGeometry(ctx context.Context, s *maze.Snapshot, opts Options) (geometry.Layout, layout.Metrics, error) {
	if err := opts.ValidateForGeometry(); err != nil {
		return geometry.Layout{}, layout.Metrics{}, err
	}
	m, err := Fit(s, opts)
	if err != nil {
		return geometry.Layout{}, layout.Metrics{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnGeometryStart(ctx, m.Topology.String(), s.Len())
	start := time.Now()
	l := geometry.ComputeSnapshot(s, m.Topology, m.CellSize, m.Scale)
	hooks.OnGeometryComplete(ctx, m.Topology.String(), time.Since(start), nil)

	opts.Logger.Debug("computed geometry",
		"topology", m.Topology,
		"cell_size", m.CellSize,
		"width", l.Width,
		"height", l.Height)
	return l, m, nil
}
