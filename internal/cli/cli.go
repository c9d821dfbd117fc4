// Package cli implements the panelgrid command-line interface.
//
// The CLI is a small host for the placement engine. It loads a dashboard
// config, a widget catalog and a layout file, runs placement searches and drag
// sessions against them, and prints or saves the result.
//
// # Commands
//
//   - init: write an empty layout (and optionally a default config)
//   - show: render a layout as a grid
//   - validate: check a layout against the grid
//   - find: run a nearest-free-slot search
//   - place: run one drag session (move or insert) and save the result
//   - catalog: list insertable widgets
//   - play: interactive terminal host
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The engine
// itself never logs; the CLI registers observability hooks that forward
// search and session events to its logger.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/internal/config"
	"github.com/matzehuels/panelgrid/pkg/buildinfo"
	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "panelgrid"

	// defaultLayoutFile is the layout path used by init when none is given.
	defaultLayoutFile = "layout.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	catalogPath string
	cols, rows  int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Panelgrid places dashboard widgets on a grid",
		Long:         `Panelgrid is a placement engine for personalizable dashboards. It decides, deterministically and without overlap, where dragged and inserted widgets land on a fixed-size grid.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := logHooks{logger: c.Logger}
			observability.SetSearchHooks(hooks)
			observability.SetSessionHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: ./panelgrid.toml or $XDG_CONFIG_HOME/panelgrid/panelgrid.toml)")
	pf.StringVar(&c.catalogPath, "catalog", "", "widget catalog file (.toml, .yaml); overrides the config")
	pf.IntVar(&c.cols, "cols", 0, "override grid columns")
	pf.IntVar(&c.rows, "rows", 0, "override grid rows")

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the dashboard config and applies --cols/--rows.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.cols > 0 {
		cfg.Grid.Cols = c.cols
	}
	if c.rows > 0 {
		cfg.Grid.Rows = c.rows
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.File != "" {
		c.Logger.Debug("Loaded config", "file", cfg.File)
	}
	return cfg, nil
}

// loadCatalog returns the catalog named by --catalog or the config.
func (c *CLI) loadCatalog(cfg config.Config) (*catalog.Static, error) {
	if c.catalogPath != "" {
		return catalog.Load(c.catalogPath)
	}
	return cfg.LoadCatalog()
}

// gridOverridden reports whether --cols or --rows was given.
func (c *CLI) gridOverridden() bool {
	return c.cols > 0 || c.rows > 0
}

// stdinPath is the layout argument that reads from standard input.
const stdinPath = "-"

// openInput returns a reader for path, treating "-" as stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdinPath {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}
