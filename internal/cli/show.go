package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCommand creates the show command that renders a layout.
func (c *CLI) showCommand() *cobra.Command {
	var noTable bool

	cmd := &cobra.Command{
		Use:   "show <layout.json>",
		Short: "Render a layout as a grid",
		Long: `Render a layout as a grid.

Each widget is tagged with the first letters of its ID on its anchor cell.
The fixed widget is drawn as ■ and free cells as ·. Use - to read the layout
from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%s grid, %d widgets", gridLabel(b.spec), b.layout.Len())))
			fmt.Fprint(out, renderGrid(b.spec, b.layout, gridView{}))
			if !noTable && b.layout.Len() > 0 {
				fmt.Fprintln(out, renderWidgetTable(b.layout))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTable, "no-table", false, "omit the widget table")

	return cmd
}
