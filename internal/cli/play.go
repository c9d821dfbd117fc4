package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// playCommand creates the play command that runs the interactive board.
func (c *CLI) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play <layout.json>",
		Short: "Arrange a layout interactively",
		Long: `Arrange a layout interactively.

Move the cursor with the arrow keys, press enter on a widget to pick it up and
enter again to drop it. Press i to insert the selected catalog widget and tab
to choose another one. While dragging, the cells where the widget would land
are marked with +. Press s to save the layout back to the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, args[0])
		},
	}
}

func (c *CLI) runPlay(cmd *cobra.Command, path string) error {
	if path == stdinPath {
		return errors.New(errors.ErrCodeInvalidInput, "play needs a layout file, not stdin")
	}
	b, err := c.loadValidBoard(cmd, path)
	if err != nil {
		return err
	}
	cat, err := c.loadCatalog(b.cfg)
	if err != nil {
		return err
	}

	save := func(l grid.Layout) error {
		next := b
		next.layout = l
		return grid.WriteDocumentFile(next.document(), path)
	}

	model := newPlayModel(b.spec, b.layout, cat.Entries(), save)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(playModel)
	if !ok {
		return nil
	}
	out := cmd.OutOrStdout()
	if m.dirty {
		printWarning(out, "Quit with unsaved changes")
		printNextStep(out, "Run again and press s to save", appName+" play "+path)
		return nil
	}
	printInfo(out, "%s has %d widgets", path, m.layout.Len())
	return nil
}
