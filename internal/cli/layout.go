package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelgrid/internal/config"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// board is a loaded layout together with the grid and config it is used with.
type board struct {
	cfg    config.Config
	spec   grid.Spec
	layout grid.Layout
	// embedded reports whether the layout file carried its own grid.
	embedded bool
}

// document returns the board in wire form, keeping the grid with the layout.
func (b board) document() grid.Document {
	spec := b.spec
	return grid.Document{Grid: &spec, Layout: b.layout}
}

// loadBoard reads the config and a layout file. A grid stored in the file
// wins over the configured one unless --cols or --rows was given.
func (c *CLI) loadBoard(cmd *cobra.Command, path string) (board, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return board{}, err
	}

	r, err := openInput(cmd, path)
	if err != nil {
		return board{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open layout")
	}
	defer r.Close()

	doc, err := grid.ReadDocument(r)
	if err != nil {
		return board{}, err
	}

	b := board{cfg: cfg, spec: cfg.Grid, layout: doc.Layout}
	if doc.Grid != nil && !c.gridOverridden() {
		b.spec = *doc.Grid
		b.embedded = true
	}
	c.Logger.Debug("Loaded layout", "path", path, "widgets", b.layout.Len(), "grid", gridLabel(b.spec))
	return b, nil
}

// loadValidBoard is loadBoard followed by layout validation.
func (c *CLI) loadValidBoard(cmd *cobra.Command, path string) (board, error) {
	b, err := c.loadBoard(cmd, path)
	if err != nil {
		return board{}, err
	}
	if err := grid.Validate(b.spec, b.layout); err != nil {
		return board{}, err
	}
	return b, nil
}

// parseCell parses "x,y" into a cell.
func parseCell(s string) (grid.Cell, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Cell{}, errors.New(errors.ErrCodeInvalidInput, "cell %q must be x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Cell{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %q: bad x", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Cell{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %q: bad y", s)
	}
	return grid.Cell{X: x, Y: y}, nil
}

func gridLabel(s grid.Spec) string {
	return strconv.Itoa(s.Cols) + "x" + strconv.Itoa(s.Rows)
}
