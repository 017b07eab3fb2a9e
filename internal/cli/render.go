package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/pipeline"
)

// renderFlags binds the render flags shared by render and layout.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Topology, "topology", "", "override the snapshot's topology (Delta, Orthogonal, Sigma, Upsilon, Rhombic)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "display width in points")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "display height in points")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "display pixel density")
	cmd.Flags().Float64Var(&opts.CellSize, "cell-size", 0, "fixed cell size in points (default: fit the display)")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [snapshot.json]",
		Short: "Render a maze snapshot to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a maze snapshot.

The snapshot is the JSON cell list produced by the generator engine, either
a bare array or {"cells": [...]}. The grid is fitted to the display given
by --width, --height and --scale unless --cell-size fixes the cell size.

Formats:
  svg     cells, walls and colours
  png     rasterized SVG (requires rsvg-convert)
  pdf     vector PDF (requires rsvg-convert)
  json    per-cell polygons, fills and walls
  dot     passage graph in Graphviz DOT
  graph   passage graph laid out by Graphviz as SVG

Geometry and artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.config.apply(cmd.Flags(), &opts)
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	renderFlags(cmd, &opts)

	cmd.Flags().StringVar(&opts.Palette, "palette", "", "heat-map palette (see 'mazer palettes')")
	cmd.Flags().BoolVar(&opts.HeatMap, "heatmap", false, "colour cells by distance from the start")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background name or #rrggbb")
	cmd.Flags().BoolVar(&opts.Gradient, "gradient", false, "fade the background from a lighter top row")
	cmd.Flags().StringVar(&opts.Tint, "tint", "", "gradient start tint as #rrggbb")
	cmd.Flags().BoolVar(&opts.Solution, "solution", false, "fill the solution path")
	cmd.Flags().BoolVar(&opts.SolutionLine, "line", false, "draw a line through the solution path")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label passage graph nodes with distances")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "raster scale for PNG output")
	registerCompletions(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinner(ctx, c.progress, fmt.Sprintf("Rendering %s...", filepath.Base(opts.Input)))
	restore := reportStages(spinner, opts.Logger)
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	restore()

	p := c.printer()
	if err != nil {
		p.errorf("Render failed")
		return err
	}
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if err := result.Snapshot.Validate(); err != nil {
		p.warning("%s", errors.UserMessage(err))
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.Input)
	if err != nil {
		return err
	}

	p.success("Render complete")
	for _, path := range paths {
		p.file(path)
	}
	p.stats(result.Stats.CellCount, result.Metrics, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact next to input, or to output. A
// single format with an explicit output is written verbatim. A derived
// path never replaces the input snapshot.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			base := outputBase(output, input)
			path = base + pipeline.Extension(format)
			if filepath.Clean(path) == filepath.Clean(input) {
				path = base + ".render" + pipeline.Extension(format)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
