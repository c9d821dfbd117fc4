// Package grid is the occupancy and bounds authority for a dashboard grid.
//
// A dashboard is a fixed-size grid of [Spec.Cols] columns by [Spec.Rows] rows.
// Widgets occupy axis-aligned rectangles of cells whose size is derived from a
// [SizeClass]. A [Layout] is the ordered set of placed widgets; it always
// contains exactly one non-movable "fixed" widget that occupies a single cell.
//
// # Invariants
//
// A valid layout (see [Validate]) satisfies:
//
//   - every widget rectangle lies inside the grid
//   - no two widget rectangles overlap, the fixed widget included
//   - widget IDs are non-empty and unique
//   - cached footprints match the widget's size class
//
// # Predicates
//
// [Spec.InBounds] and [Spec.IsFree] are pure functions over a layout; they
// never mutate it and never fail. Out-of-bounds rectangles are simply not
// free:
//
//	spec := grid.Spec{Cols: 6, Rows: 4}
//	fp, _ := grid.FootprintOf(grid.Medium)
//	free := spec.IsFree(layout, grid.RectAt(grid.Cell{X: 3, Y: 2}, fp), "")
//
// # Serialization
//
// Layouts travel between the engine and its host as JSON:
//
//	{
//	  "grid": {"cols": 6, "rows": 4},
//	  "widgets": [
//	    {"id": "fixed", "size": "small", "x": 5, "y": 0, "fixed": true},
//	    {"id": "sales", "size": "medium", "x": 0, "y": 0}
//	  ]
//	}
//
// The "grid" object is optional. Use [ReadLayout] and [WriteLayout] for bare
// layouts, or [ReadDocument] and [WriteDocument] to keep the grid alongside.
package grid
