package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
)

// validateCommand checks snapshots against the structural invariants.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [snapshot.json...]",
		Short: "Check snapshots for a single start, goal and topology",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			p := c.printer()
			failed := 0
			for _, path := range args {
				if err := validateFile(p, path); err != nil {
					p.errorf("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
			}
			if failed > 0 {
				err := errors.New(errors.ErrCodeInvalidSnapshot, "%d of %d snapshots invalid", failed, len(args))
				prog.fail("Validation failed", err, "count", len(args))
				return err
			}
			prog.done("Validated snapshots", "count", len(args))
			return nil
		},
	}
}

func validateFile(p printer, path string) error {
	s, err := maze.ReadSnapshotFile(path)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	start, _ := s.Start()
	goal, _ := s.Goal()
	p.success("%s", path)
	p.detail("%d cells · %dx%d %s · start %s · goal %s · max distance %d",
		s.Len(), s.Columns(), s.Rows(), s.Topology(), start.Coordinates(), goal.Coordinates(), s.MaxDistance())
	if n := len(s.SolutionPath()); n > 0 {
		p.detail("solution path: %d cells", n)
	}
	return nil
}
