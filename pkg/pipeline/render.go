package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/geometry"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
	"github.com/matzehuels/mazer/pkg/render/passage"
	"github.com/matzehuels/mazer/pkg/render/sink"
	"github.com/matzehuels/mazer/pkg/reveal"
	"github.com/matzehuels/mazer/pkg/style"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l geometry.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, l geometry.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts, err := SinkOptions(l, opts)
	if err != nil {
		return nil, err
	}

	var dot string
	if opts.HasFormat(FormatDOT) || opts.HasFormat(FormatGraph) {
		dot = passage.ToDOT(SnapshotOf(l), passage.Options{Detailed: opts.Detailed})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, opts.PNGScale, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sinkOpts...)
		case FormatDOT:
			data = []byte(dot)
		case FormatGraph:
			data, err = passage.RenderSVG(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// NewResolver builds the colour resolver opts describes for cells.
func NewResolver(cells []maze.Cell, opts Options) (*style.Resolver, error) {
	so := style.Options{HeatMap: opts.HeatMap, Gradient: opts.Gradient}
	for _, c := range cells {
		so.MaxDistance = max(so.MaxDistance, c.Distance)
		so.Rows = max(so.Rows, c.Y+1)
	}
	if opts.Palette != "" {
		p, err := style.PaletteByName(opts.Palette)
		if err != nil {
			return nil, err
		}
		so.Palette = &p
	}
	bg, err := opts.background()
	if err != nil {
		return nil, err
	}
	so.Background = bg
	if so.Tint, err = opts.tint(); err != nil {
		return nil, err
	}
	return style.NewResolver(so), nil
}

// SinkOptions builds the sink configuration for opts: the colour resolver
// and, when requested, the revealed solution.
func SinkOptions(l geometry.Layout, opts Options) ([]sink.Option, error) {
	resolver, err := NewResolver(cellsOf(l), opts)
	if err != nil {
		return nil, err
	}

	sinkOpts := []sink.Option{sink.WithResolver(resolver)}
	switch {
	case opts.Revealed != nil:
		sinkOpts = append(sinkOpts, sink.WithRevealed(opts.Revealed))
	case opts.Solution || opts.SolutionLine:
		sinkOpts = append(sinkOpts, sink.WithRevealed(SolutionSet(l)))
	}
	if opts.SolutionLine {
		sinkOpts = append(sinkOpts, sink.WithSolutionLine())
	}
	return sinkOpts, nil
}

// SolutionSet is the set of cells a completed reveal would show.
func SolutionSet(l geometry.Layout) maze.CoordinateSet {
	set := make(maze.CoordinateSet)
	for _, c := range reveal.PathOf(cellsOf(l)) {
		set.Add(c)
	}
	return set
}

// SnapshotOf rebuilds the snapshot a layout was computed from.
func SnapshotOf(l geometry.Layout) *maze.Snapshot {
	return maze.NewSnapshot(cellsOf(l))
}

func cellsOf(l geometry.Layout) []maze.Cell {
	cells := make([]maze.Cell, len(l.Cells))
	for i, c := range l.Cells {
		cells[i] = c.Cell
	}
	return cells
}
