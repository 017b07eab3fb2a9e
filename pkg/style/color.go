package style

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mazer/pkg/maze"
)

// Fixed state colours.
var (
	StartColor     = colorful.Color{R: 0, G: 0, B: 1}
	GoalColor      = colorful.Color{R: 1, G: 0, B: 0}
	TraversedColor = rgb(255, 120, 180)
	SolutionColor  = rgb(116, 180, 191.5)
)

func rgb(r, g, b float64) colorful.Color {
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}
}

// RevealedSet is the set of coordinates whose solution fill is showing.
// maze.CoordinateSet and the reveal animator's snapshot both satisfy it.
type RevealedSet interface {
	Contains(maze.Coordinates) bool
}

// Options configures colour resolution for one snapshot.
type Options struct {
	// Palette supplies heat-map shades. The zero value uses DefaultPalette.
	Palette *Palette

	// HeatMap enables distance shading of unvisited cells.
	HeatMap bool

	// MaxDistance is the largest distance in the snapshot; shading is
	// disabled when it is zero.
	MaxDistance int

	// Background is the plain fill. The zero value uses DefaultBackground.
	Background *colorful.Color

	// Gradient fades the background down the rows of the grid. Tint, when
	// set, replaces white as the colour the top row is lightened towards.
	Gradient bool
	Tint     *colorful.Color
	Rows     int
}

// OptionsFor returns options with MaxDistance and Rows taken from s.
func OptionsFor(s *maze.Snapshot) Options {
	return Options{MaxDistance: s.MaxDistance(), Rows: s.Rows()}
}

// Resolver maps cells to fill colours.
type Resolver struct {
	opts       Options
	palette    Palette
	background colorful.Color
}

// NewResolver returns a resolver for opts. Missing palette or background
// fall back to the defaults.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{opts: opts, palette: DefaultPalette, background: DefaultBackground}
	if opts.Palette != nil {
		r.palette = *opts.Palette
	}
	if opts.Background != nil {
		r.background = *opts.Background
	}
	return r
}

// Resolve returns the fill for cell. The first matching rule wins: start,
// goal, visited, revealed solution, heat map, background. revealed may be
// nil.
func (r *Resolver) Resolve(cell maze.Cell, revealed RevealedSet) colorful.Color {
	switch {
	case cell.IsStart:
		return StartColor
	case cell.IsGoal:
		return GoalColor
	case cell.IsVisited:
		return TraversedColor
	case revealed != nil && revealed.Contains(cell.Coordinates()):
		return SolutionColor
	case r.opts.HeatMap && r.opts.MaxDistance > 0:
		return r.palette.Shade(HeatIndex(cell.Distance, r.opts.MaxDistance))
	}
	return r.Background(cell.Y)
}

// Background returns the plain fill for row y, applying the gradient when
// enabled.
func (r *Resolver) Background(y int) colorful.Color {
	if !r.opts.Gradient {
		return r.background
	}
	return Gradient(r.background, r.opts.Tint, y, r.opts.Rows)
}

// ResolveColor is a one-shot form of NewResolver(opts).Resolve.
func ResolveColor(cell maze.Cell, opts Options, revealed RevealedSet) colorful.Color {
	return NewResolver(opts).Resolve(cell, revealed)
}

// HeatIndex maps distance onto a palette index in [0, 9]. A non-positive
// maxDistance yields 0.
func HeatIndex(distance, maxDistance int) int {
	if maxDistance <= 0 || distance <= 0 {
		return 0
	}
	return min(Shades-1, distance*Shades/maxDistance)
}
