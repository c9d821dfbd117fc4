package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/placement"
)

// findCommand creates the find command that runs a single placement search.
func (c *CLI) findCommand() *cobra.Command {
	var (
		at      string
		size    string
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "find <layout.json> --at x,y [--size s] [--exclude id]",
		Short: "Find the nearest free slot for a footprint",
		Long: `Find the nearest free slot for a footprint.

The search starts at --at and expands ring by ring, rows outward first and
columns within each row, and reports the first cell where the footprint fits.
With --exclude the named widget is ignored as an obstacle, as when it is being
moved; its size is used when --size is not given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFind(cmd, args[0], at, size, exclude)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "anchor cell as x,y (required)")
	cmd.Flags().StringVarP(&size, "size", "s", "", "size class: small, medium, large")
	cmd.Flags().StringVar(&exclude, "exclude", "", "widget ID to ignore as an obstacle")
	_ = cmd.MarkFlagRequired("at")
	_ = cmd.RegisterFlagCompletionFunc("size", completeSizes)

	return cmd
}

func (c *CLI) runFind(cmd *cobra.Command, path, at, size, exclude string) error {
	anchor, err := parseCell(at)
	if err != nil {
		return err
	}
	b, err := c.loadValidBoard(cmd, path)
	if err != nil {
		return err
	}

	var sc grid.SizeClass
	switch {
	case size != "":
		if sc, err = grid.ParseSizeClass(size); err != nil {
			return err
		}
	case exclude != "":
		w, ok := b.layout.Get(exclude)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "widget %q not in layout", exclude)
		}
		sc = w.Size
	default:
		return errors.New(errors.ErrCodeInvalidInput, "--size is required unless --exclude names a widget")
	}
	if exclude != "" {
		if w, ok := b.layout.Get(exclude); ok && w.IsFixed() {
			return errors.New(errors.ErrCodeFixedWidgetViolation, "the fixed widget %q cannot be excluded", exclude)
		}
	}

	fp, _ := grid.FootprintOf(sc)
	cell, ok := placement.Searcher{}.Find(b.layout, b.spec, anchor, fp, exclude)
	if !ok {
		return errors.New(errors.ErrCodeNoSlotAvailable, "no free slot for %s (%s) on the %s grid", sc, fp, gridLabel(b.spec))
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "%s fits at %s", sc, StyleHighlight.Render(cell.String()))
	if cell != anchor {
		printDetail(out, "requested %s was not free", anchor)
	}
	return nil
}

func completeSizes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(grid.SizeClasses))
	for i, s := range grid.SizeClasses {
		names[i] = string(s)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
