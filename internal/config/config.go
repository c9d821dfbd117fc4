// Package config loads the dashboard configuration for the panelgrid host.
//
// Settings come from, in increasing priority: built-in defaults, a
// panelgrid.toml file, and PANELGRID_* environment variables. The file is
// either given explicitly or searched for in the working directory and then
// in $XDG_CONFIG_HOME/panelgrid. A missing file is not an error unless it was
// named explicitly.
//
//	[grid]
//	cols = 6
//	rows = 4
//
//	[fixed]
//	id = "fixed"
//	x = 5
//	y = 0
//
//	catalog = "widgets.toml"
//
// Nested keys map to environment variables with underscores, e.g.
// PANELGRID_GRID_COLS=8.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

const (
	// FileName is the config file name without extension.
	FileName  = "panelgrid"
	fileType  = "toml"
	envPrefix = "PANELGRID"

	keyCols    = "grid.cols"
	keyRows    = "grid.rows"
	keyFixedID = "fixed.id"
	keyFixedX  = "fixed.x"
	keyFixedY  = "fixed.y"
	keyCatalog = "catalog"
)

// Config is the host configuration for one dashboard.
type Config struct {
	Grid    grid.Spec `mapstructure:"grid" toml:"grid"`
	Fixed   Fixed     `mapstructure:"fixed" toml:"fixed"`
	Catalog string    `mapstructure:"catalog" toml:"catalog,omitempty"`

	// File is the config file that was read, or "" when none was found.
	File string `mapstructure:"-" toml:"-"`
}

// Fixed places the dashboard's reserved widget.
type Fixed struct {
	ID string `mapstructure:"id" toml:"id"`
	X  int    `mapstructure:"x" toml:"x"`
	Y  int    `mapstructure:"y" toml:"y"`
}

// Default returns the built-in configuration: a 6x4 grid with the fixed
// widget in the top-right cell and the built-in catalog.
func Default() Config {
	return Config{
		Grid:  grid.Spec{Cols: 6, Rows: 4},
		Fixed: Fixed{ID: "fixed", X: 5, Y: 0},
	}
}

// Load reads the configuration. An empty path searches the default locations.
func Load(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault(keyCols, def.Grid.Cols)
	v.SetDefault(keyRows, def.Grid.Rows)
	v.SetDefault(keyFixedID, def.Fixed.ID)
	v.SetDefault(keyFixedX, def.Fixed.X)
	v.SetDefault(keyFixedY, def.Fixed.Y)
	v.SetDefault(keyCatalog, def.Catalog)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(fileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the grid and that the fixed widget fits on it.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateID(c.Fixed.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "fixed widget id")
	}
	if !c.Grid.InBounds(c.FixedWidget().Rect()) {
		return errors.New(errors.ErrCodeInvalidInput, "fixed widget at (%d,%d) is outside the %dx%d grid",
			c.Fixed.X, c.Fixed.Y, c.Grid.Cols, c.Grid.Rows)
	}
	return nil
}

// FixedWidget returns the configured fixed widget.
func (c Config) FixedWidget() grid.Widget {
	return grid.NewFixed(c.Fixed.ID, grid.Cell{X: c.Fixed.X, Y: c.Fixed.Y})
}

// EmptyLayout returns a layout holding only the fixed widget.
func (c Config) EmptyLayout() grid.Layout {
	return grid.NewLayout(c.FixedWidget())
}

// CatalogPath returns the catalog file path. Relative paths are resolved
// against the directory of the config file that named them.
func (c Config) CatalogPath() string {
	if c.Catalog == "" || filepath.IsAbs(c.Catalog) || c.File == "" {
		return c.Catalog
	}
	return filepath.Join(filepath.Dir(c.File), c.Catalog)
}

// LoadCatalog returns the configured catalog, or the built-in one when no
// catalog file is configured.
func (c Config) LoadCatalog() (*catalog.Static, error) {
	path := c.CatalogPath()
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves the configuration as TOML. Existing files are left alone
// unless overwrite is set.
func (c Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
