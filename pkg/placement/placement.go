package placement

import (
	"iter"
	"time"

	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/observability"
)

// FindNearestFreeSlot returns the first cell in ring order around anchor where
// a footprint fp fits without leaving the grid or overlapping any widget other
// than excludeID. The layout is never modified.
//
// The boolean is false when no such cell exists, including when the grid is
// invalid or fp is empty or larger than the grid.
func FindNearestFreeSlot(l grid.Layout, spec grid.Spec, anchor grid.Cell, fp grid.Footprint, excludeID string) (grid.Cell, bool) {
	cell, ok, _ := search(l, spec, anchor, fp, excludeID)
	return cell, ok
}

// Searcher runs placement searches and reports them to Hooks. A nil Hooks
// falls back to the globally registered [observability.Search] hooks.
type Searcher struct {
	Hooks observability.SearchHooks
}

// Find behaves like [FindNearestFreeSlot].
func (s Searcher) Find(l grid.Layout, spec grid.Spec, anchor grid.Cell, fp grid.Footprint, excludeID string) (grid.Cell, bool) {
	start := time.Now()
	cell, ok, probes := search(l, spec, anchor, fp, excludeID)

	hooks := s.Hooks
	if hooks == nil {
		hooks = observability.Search()
	}
	hooks.OnSearch(anchor.X, anchor.Y, fp.W, fp.H, probes, ok, cell.X, cell.Y, time.Since(start))
	return cell, ok
}

func search(l grid.Layout, spec grid.Spec, anchor grid.Cell, fp grid.Footprint, excludeID string) (grid.Cell, bool, int) {
	if !Fits(spec, fp) {
		return grid.Cell{}, false, 0
	}
	probes := 0
	for c := range Candidates(spec, anchor) {
		probes++
		if spec.IsFree(l, grid.RectAt(c, fp), excludeID) {
			return c, true, probes
		}
	}
	return grid.Cell{}, false, probes
}

// Fits reports whether fp is non-empty and no larger than the grid, i.e.
// whether it could be placed on an empty grid at all.
func Fits(spec grid.Spec, fp grid.Footprint) bool {
	if spec.Validate() != nil {
		return false
	}
	return fp.W > 0 && fp.H > 0 && fp.W <= spec.Cols && fp.H <= spec.Rows
}

// Candidates yields anchor cells in ring order around anchor. An anchor
// outside the grid is first clamped to the nearest grid cell. Cells outside
// the grid are yielded too; callers filter them with [grid.Spec.InBounds].
// Offsets never exceed max(cols, rows), and each axis ends early once its
// offset can no longer land on the grid. An invalid grid yields nothing.
func Candidates(spec grid.Spec, anchor grid.Cell) iter.Seq[grid.Cell] {
	return func(yield func(grid.Cell) bool) {
		if spec.Validate() != nil {
			return
		}
		a := clamp(spec, anchor)
		limit := max(spec.Cols, spec.Rows)
		maxDY := min(reach(a.Y, spec.Rows), limit)
		maxDX := min(reach(a.X, spec.Cols), limit)
		for dy := 0; dy <= maxDY; dy++ {
			for _, y := range ring(a.Y, dy) {
				for dx := 0; dx <= maxDX; dx++ {
					for _, x := range ring(a.X, dx) {
						if !yield(grid.Cell{X: x, Y: y}) {
							return
						}
					}
				}
			}
		}
	}
}

// clamp moves c onto the nearest cell of the grid.
func clamp(spec grid.Spec, c grid.Cell) grid.Cell {
	return grid.Cell{
		X: min(max(c.X, 0), spec.Cols-1),
		Y: min(max(c.Y, 0), spec.Rows-1),
	}
}

// ring returns the coordinates at distance d from a, negative side first.
func ring(a, d int) []int {
	if d == 0 {
		return []int{a}
	}
	return []int{a - d, a + d}
}

// reach is the largest offset from a in [0, n) that can still land on [0, n).
func reach(a, n int) int {
	return max(a, n-1-a)
}
