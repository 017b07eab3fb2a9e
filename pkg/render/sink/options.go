package sink

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/style"
)

// Option configures every sink. SVG, PNG and PDF honour all options; JSON
// ignores the solution line.
type Option func(*scene)

type scene struct {
	resolver     *style.Resolver
	revealed     style.RevealedSet
	stroke       float64
	wallColor    colorful.Color
	solutionLine bool
	margin       float64
}

// WithResolver sets the fill resolver.
func WithResolver(r *style.Resolver) Option { return func(s *scene) { s.resolver = r } }

// WithRevealed sets the revealed solution cells.
func WithRevealed(set style.RevealedSet) Option { return func(s *scene) { s.revealed = set } }

// WithStrokeWidth overrides the wall width.
func WithStrokeWidth(w float64) Option { return func(s *scene) { s.stroke = w } }

// WithWallColor overrides the wall colour (black by default).
func WithWallColor(c colorful.Color) Option { return func(s *scene) { s.wallColor = c } }

// WithSolutionLine draws a line through the centres of revealed cells in
// distance order.
func WithSolutionLine() Option { return func(s *scene) { s.solutionLine = true } }

// WithMargin sets the space around the grid. It defaults to one stroke
// width.
func WithMargin(m float64) Option { return func(s *scene) { s.margin = m } }

func newScene(l geometry.Layout, opts ...Option) scene {
	s := scene{margin: -1}
	for _, opt := range opts {
		opt(&s)
	}
	if s.resolver == nil {
		so := style.Options{}
		for _, c := range l.Cells {
			so.MaxDistance = max(so.MaxDistance, c.Cell.Distance)
			so.Rows = max(so.Rows, c.Cell.Y+1)
		}
		s.resolver = style.NewResolver(so)
	}
	if s.stroke <= 0 {
		s.stroke = style.StrokeWidth(l.Topology, l.CellSize, l.PixelScale)
	}
	if s.margin < 0 {
		s.margin = s.stroke
	}
	return s
}

func (s scene) fill(c maze.Cell) colorful.Color {
	return s.resolver.Resolve(c, s.revealed)
}

// solutionPoints returns the centroids of revealed cells ordered by
// distance.
func (s scene) solutionPoints(l geometry.Layout) []geometry.Point {
	if s.revealed == nil {
		return nil
	}
	var shapes []geometry.CellShape
	for _, c := range l.Cells {
		if s.revealed.Contains(c.Cell.Coordinates()) {
			shapes = append(shapes, c)
		}
	}
	slices.SortStableFunc(shapes, func(a, b geometry.CellShape) int {
		return a.Cell.Distance - b.Cell.Distance
	})
	pts := make([]geometry.Point, len(shapes))
	for i, c := range shapes {
		pts[i] = c.Centroid()
	}
	return pts
}
