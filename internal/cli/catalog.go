package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/errors"
)

// catalogCommand creates the catalog command that lists insertable widgets.
func (c *CLI) catalogCommand() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List insertable widgets",
		Long: `List insertable widgets.

Entries come from --catalog, the catalog named in the config, or the built-in
catalog. With --export the listed catalog is written to a .toml or .yaml file,
which is a convenient starting point for a custom catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if export != "" {
				return exportCatalog(out, cat, export)
			}
			fmt.Fprintln(out, renderCatalogTable(cat.Entries()))
			printDetail(out, "%d entries", cat.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the catalog to a .toml or .yaml file")

	return cmd
}

func exportCatalog(out io.Writer, cat *catalog.Static, path string) error {
	format, err := catalog.FormatOf(path)
	if err != nil {
		return err
	}
	data, err := catalog.Write(cat.Entries(), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	printSuccess(out, "Exported %d entries", cat.Len())
	printFile(out, path)
	return nil
}

func renderCatalogTable(entries []catalog.Entry) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		fp, _ := e.Footprint()
		rows = append(rows, []string{e.ID, string(e.Size), fp.String(), e.Label(), e.Description})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Size", "Span", "Title", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			case col == 4:
				return StyleDim.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		Render()
}
