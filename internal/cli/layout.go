package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
)

// layoutCommand creates the layout command. With a snapshot it reports how
// the grid fits the display; without one it plans the grid dimensions to
// request from the engine for a topology and cell size tier.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		tier    string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Compute display metrics for a snapshot or plan grid dimensions",
		Long: `Compute display metrics.

With a snapshot argument the grid is fitted to the display and the metrics
are printed (or written as JSON with -o).

Without an argument, --topology and --tier plan a grid: the number of
columns and rows to request from the engine so that cells of the tier's
adjusted size fill the display, and the vertical padding reserved around
it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags(), &opts)
			if !cmd.Flags().Changed("tier") {
				tier = c.config.Render.Tier
			}
			if len(args) == 0 {
				return c.runPlan(opts, tier)
			}
			opts.Input = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write metrics as JSON to this file")
	cmd.Flags().StringVar(&tier, "tier", maze.Medium.String(), "cell size tier for planning: tiny, small, medium, large")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	renderFlags(cmd, &opts)
	registerCompletions(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	geo, m, hit, err := runner.ComputeGeometryWithCacheInfo(ctx, s, opts)
	if err != nil {
		return err
	}

	p := c.printer()
	if output != "" {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		p.success("Layout complete")
		p.file(output)
		p.stats(s.Len(), m, hit)
		return nil
	}

	p.metrics(m)
	p.keyValue("Drawing", fmt.Sprintf("%.1f x %.1f", geo.Width, geo.Height))
	p.stats(s.Len(), m, hit)
	p.nextStep("Render", "mazer render "+opts.Input)
	return nil
}

func (c *CLI) runPlan(opts pipeline.Options, tierName string) error {
	tier, ok := maze.ParseCellSize(tierName)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cell size tier %q", tierName)
	}
	if opts.Topology == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--topology is required without a snapshot")
	}
	if err := pipeline.ValidateTopology(opts.Topology); err != nil {
		return err
	}
	t, _ := maze.ParseTopology(opts.Topology)
	d := layout.Display{Width: opts.Width, Height: opts.Height, Scale: opts.Scale}
	if err := d.Validate(); err != nil {
		return err
	}

	cols, rows := layout.Dimensions(t, tier, d)
	m, err := layout.Fit(t, cols, rows, d)
	if err != nil {
		return err
	}

	p := c.printer()
	p.title("%s grid, %s cells", t, tier)
	p.keyValue("Request", fmt.Sprintf("%d x %d", cols, rows))
	p.keyValue("Adjusted", fmt.Sprintf("%.2f", layout.AdjustedCellSize(t, tier)))
	p.keyValue("Padding", fmt.Sprintf("%.1f", layout.VerticalPadding(t, tier, d.Height)))
	p.metrics(m)
	return nil
}
