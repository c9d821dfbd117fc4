// Package placement finds where a widget footprint lands on a dashboard grid.
//
// The search is an expanding ring around the requested anchor. Rows are the
// outer ring and columns the inner one; on each axis the offset grows from 0
// and both directions are tried, negative first:
//
//	for dy := 0, 1, 2, ...              rows    y0, y0-dy, y0+dy
//	    for dx := 0, 1, 2, ...          columns x0, x0-dx, x0+dx
//	        if spec.IsFree(layout, rect at (x, y), excludeID) -> found
//
// The first free candidate in this order wins. There is no distance
// comparison between candidates of the same ring, so the result is fully
// determined by the inputs.
//
// An anchor outside the grid is clamped to the nearest grid cell first. No
// offset exceeds max(cols, rows), and an axis stops early once its offset
// leaves the grid on both sides. The worst case is O(cols*rows) probes no
// matter where the anchor is, and if any free slot exists it is found.
//
// The fixed widget needs no special handling. It is an ordinary occupant of
// its cell and is never the widget being moved, so [grid.Spec.IsFree] always
// treats it as occupied.
//
// # Usage
//
//	cell, ok := placement.FindNearestFreeSlot(layout, spec, grid.Cell{X: 0, Y: 0},
//	    grid.Footprint{W: 1, H: 1}, "")
//	if !ok {
//	    // no slot: the footprint does not fit anywhere
//	}
//
// A [Searcher] does the same and reports every search to an
// [observability.SearchHooks] implementation.
package placement
