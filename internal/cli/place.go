package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/drag"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

type placeOptions struct {
	at      string
	from    string
	insert  string
	move    string
	output  string
	inPlace bool
}

// placeCommand creates the place command that runs one drag session.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOptions

	cmd := &cobra.Command{
		Use:   "place <layout.json> --at x,y (--insert entry | --move id)",
		Short: "Move or insert a widget and save the new layout",
		Long: `Move or insert a widget and save the new layout.

Runs one drag session: the widget is picked up (or taken from the catalog),
hovered over --at and dropped there. If --at is occupied or the footprint
would leave the grid, the widget lands on the nearest free slot. If there is
no free slot anywhere the layout is left unchanged and the command fails.

The new layout is printed as JSON unless -o or --in-place is given.`,
		Example: `  panelgrid place layout.json --insert chart --at 0,1 -o layout.json
  panelgrid place layout.json --move sales --at 3,2 --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "drop cell as x,y (required)")
	cmd.Flags().StringVar(&opts.from, "from", "", "drag origin as x,y (default: the widget's anchor, or --at for inserts)")
	cmd.Flags().StringVar(&opts.insert, "insert", "", "catalog entry to insert")
	cmd.Flags().StringVar(&opts.move, "move", "", "ID of the widget to move")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the layout to this file")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "overwrite the input layout")
	_ = cmd.MarkFlagRequired("at")
	cmd.MarkFlagsOneRequired("insert", "move")
	cmd.MarkFlagsMutuallyExclusive("insert", "move")
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")
	_ = cmd.RegisterFlagCompletionFunc("insert", c.completeEntries)

	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, path string, opts placeOptions) error {
	at, err := parseCell(opts.at)
	if err != nil {
		return err
	}
	if opts.inPlace && path == stdinPath {
		return errors.New(errors.ErrCodeInvalidInput, "--in-place needs a layout file, not stdin")
	}

	b, err := c.loadBoard(cmd, path)
	if err != nil {
		return err
	}

	var src drag.Source
	var ctrlOpts []drag.Option
	origin := at
	if opts.insert != "" {
		cat, err := c.loadCatalog(b.cfg)
		if err != nil {
			return err
		}
		entry, ok := cat.Lookup(opts.insert)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "catalog has no entry %q", opts.insert)
		}
		src = drag.Insert(entry)
		ctrlOpts = append(ctrlOpts, drag.WithIDGenerator(entryIDs(entry)))
	} else {
		src = drag.Move(opts.move)
		if w, ok := b.layout.Get(opts.move); ok {
			origin = w.Anchor()
		}
	}
	if opts.from != "" {
		if origin, err = parseCell(opts.from); err != nil {
			return err
		}
	}

	prog := newProgress(c.Logger)
	ctrl := drag.New(b.spec, ctrlOpts...)
	if err := ctrl.Start(b.layout, src, origin); err != nil {
		return err
	}
	if preview, ok, err := ctrl.UpdateTarget(at); err != nil {
		return err
	} else if ok {
		c.Logger.Debug("Preview", "pointer", at, "cell", preview)
	}
	res, err := ctrl.Drop(at)
	if err != nil {
		return err
	}
	if res.Status == drag.StatusNoSlotAvailable {
		return errors.New(errors.ErrCodeNoSlotAvailable, "no free slot for %s on the %s grid; layout unchanged", src, gridLabel(b.spec))
	}
	prog.done(fmt.Sprintf("Placed %s at %s", res.WidgetID, res.Cell))

	b.layout = res.Layout
	dest := opts.output
	if opts.inPlace {
		dest = path
	}
	if dest == "" {
		return grid.WriteDocument(b.document(), cmd.OutOrStdout())
	}
	if err := grid.WriteDocumentFile(b.document(), dest); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "%s %s at %s", placeVerb(src), res.WidgetID, StyleHighlight.Render(res.Cell.String()))
	if res.Cell != at {
		printDetail(out, "requested %s was not free", at)
	}
	printFile(out, dest)
	return nil
}

func placeVerb(src drag.Source) string {
	if src.IsInsert() {
		return "Inserted"
	}
	return "Moved"
}

// entryIDs names inserted widgets after their catalog entry with a random
// suffix, e.g. "chart-3f9a1c2b".
func entryIDs(e catalog.Entry) func() string {
	return func() string {
		id := uuid.NewString()
		return e.ID + "-" + id[len(id)-8:]
	}
}

// completeEntries completes catalog entry IDs for --insert.
func (c *CLI) completeEntries(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := c.loadCatalog(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, e := range cat.Entries() {
		ids = append(ids, e.ID+"\t"+e.Label())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
