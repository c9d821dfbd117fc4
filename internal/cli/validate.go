package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/pkg/grid"
)

// validateCommand creates the validate command that checks layout invariants.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <layout.json>",
		Short: "Check a layout against its grid",
		Long: `Check a layout against its grid.

A valid layout keeps every widget inside the grid, has no overlapping widgets,
uses unique IDs and known size classes, and has exactly one fixed 1x1 widget.
The command exits non-zero and names the first violation otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			if err := grid.Validate(b.spec, b.layout); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "%s is valid", args[0])
			printDetail(out, "%s grid · %d widgets · %d free cells", gridLabel(b.spec), b.layout.Len(), b.layout.FreeCells(b.spec))
			return nil
		},
	}
}
