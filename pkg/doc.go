// Package pkg provides the core libraries for Panelgrid dashboard placement.
//
// # Overview
//
// Panelgrid decides where widgets land on a fixed-size dashboard grid. When a
// user drags a widget, or drags a new one in from a catalog, the engine finds
// the nearest cell where the widget's footprint fits without leaving the grid
// or overlapping another widget, and commits the move only when such a cell
// exists. The pkg directory is organized leaves first:
//
//  1. [grid] - Occupancy and bounds authority, layout validation, JSON format
//  2. [placement] - Nearest free slot search in ring order
//  3. [drag] - Drag session state machine for moves and inserts
//  4. [catalog] - Insertable widget metadata (TOML and YAML files)
//
// # Architecture
//
// The typical data flow for one drag:
//
//	Pointer cell from the host UI
//	         ↓
//	    [drag] package (session state, preview, drop)
//	         ↓
//	    [placement] package (nearest free slot)
//	         ↓
//	    [grid] package (bounds and occupancy)
//	         ↓
//	    New layout handed back to the host
//
// # Quick Start
//
// Insert a catalog widget near the cell under the pointer:
//
//	import (
//	    "github.com/matzehuels/panelgrid/pkg/catalog"
//	    "github.com/matzehuels/panelgrid/pkg/drag"
//	    "github.com/matzehuels/panelgrid/pkg/grid"
//	)
//
//	spec := grid.Spec{Cols: 6, Rows: 4}
//	layout := grid.NewLayout(grid.NewFixed("fixed", grid.Cell{X: 5, Y: 0}))
//	entry, _ := catalog.Default().Lookup("chart")
//
//	ctrl := drag.New(spec)
//	_ = ctrl.Start(layout, drag.Insert(entry), grid.Cell{X: 0, Y: 0})
//	preview, ok, _ := ctrl.UpdateTarget(grid.Cell{X: 4, Y: 3})
//	res, _ := ctrl.Drop(grid.Cell{X: 4, Y: 3})
//	if res.Status == drag.StatusCommitted {
//	    layout = res.Layout
//	}
//
// # Supporting Packages
//
// [errors] - Coded errors (INVALID_LAYOUT, NO_SLOT_AVAILABLE, ...) with
// Wrap, Is and GetCode helpers.
//
// [observability] - Hooks for search and session events. The defaults do
// nothing; hosts register their own at startup.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/placement/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/grid
// [placement]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/placement
// [drag]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/drag
// [catalog]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/catalog
// [errors]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/panelgrid/pkg/buildinfo
package pkg
