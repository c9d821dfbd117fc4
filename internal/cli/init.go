package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/internal/config"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// initCommand creates the init command that writes an empty layout.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force       bool
		writeConfig bool
	)

	cmd := &cobra.Command{
		Use:   "init [layout.json]",
		Short: "Write an empty layout containing only the fixed widget",
		Long: `Write an empty layout containing only the fixed widget.

The grid size and the fixed widget's position come from the config file and
--cols/--rows. The grid is stored in the layout so later commands use it even
without the config. With --write-config a default panelgrid.toml is written
next to the layout as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultLayoutFile
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInit(cmd, path, force, writeConfig)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "also write a default "+config.FileName+".toml")

	return cmd
}

func (c *CLI) runInit(cmd *cobra.Command, path string, force, writeConfig bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
		}
	}

	spec := cfg.Grid
	doc := grid.Document{Grid: &spec, Layout: cfg.EmptyLayout()}
	if err := grid.WriteDocumentFile(doc, path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Created empty layout")
	printKeyValue(out, "grid", gridLabel(spec))
	printKeyValue(out, "fixed", fmt.Sprintf("%s at %s", cfg.Fixed.ID, cfg.FixedWidget().Anchor()))
	printFile(out, path)

	if writeConfig {
		cfgPath := filepath.Join(filepath.Dir(path), config.FileName+".toml")
		if err := cfg.Write(cfgPath, force); err != nil {
			return err
		}
		printFile(out, cfgPath)
	}

	printNextStep(out, "Insert a widget", appName+" place "+path+" --insert stats --at 0,0")
	return nil
}
