package grid

import (
	"fmt"

	"github.com/matzehuels/panelgrid/pkg/errors"
)

// =============================================================================
// Geometry
// =============================================================================

// Cell is a grid cell index. (0,0) is the top-left cell.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the cell as "(x,y)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Footprint is the number of columns and rows a widget spans.
type Footprint struct {
	W int `json:"w"`
	H int `json:"h"`
}

// String formats the footprint as "WxH".
func (f Footprint) String() string { return fmt.Sprintf("%dx%d", f.W, f.H) }

// Rect is a half-open rectangle of cells: [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

// RectAt returns the rectangle a footprint covers when anchored at c.
func RectAt(c Cell, f Footprint) Rect {
	return Rect{X: c.X, Y: c.Y, W: f.W, H: f.H}
}

// Anchor returns the top-left cell of the rectangle.
func (r Rect) Anchor() Cell { return Cell{X: r.X, Y: r.Y} }

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.W <= o.X || r.X >= o.X+o.W || r.Y+r.H <= o.Y || r.Y >= o.Y+o.H)
}

// Contains reports whether cell c lies inside r.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.X+r.W && c.Y >= r.Y && c.Y < r.Y+r.H
}

// =============================================================================
// Size Classes
// =============================================================================

// SizeClass names a fixed widget footprint.
type SizeClass string

// Size classes.
const (
	Small  SizeClass = "small"
	Medium SizeClass = "medium"
	Large  SizeClass = "large"
)

// footprints is the static size table. It is not configurable per widget.
var footprints = map[SizeClass]Footprint{
	Small:  {W: 1, H: 1},
	Medium: {W: 2, H: 1},
	Large:  {W: 3, H: 2},
}

// SizeClasses lists the known size classes from smallest to largest.
var SizeClasses = []SizeClass{Small, Medium, Large}

// FootprintOf returns the footprint of a size class.
// The boolean is false for unknown size classes.
func FootprintOf(size SizeClass) (Footprint, bool) {
	f, ok := footprints[size]
	return f, ok
}

// Valid reports whether s is a known size class.
func (s SizeClass) Valid() bool {
	_, ok := footprints[s]
	return ok
}

// ParseSizeClass converts a size name to a SizeClass.
func ParseSizeClass(name string) (SizeClass, error) {
	if err := errors.ValidateSizeName(name); err != nil {
		return "", err
	}
	s := SizeClass(name)
	if !s.Valid() {
		return "", errors.New(errors.ErrCodeInvalidSizeClass, "unknown size class %q (valid: small, medium, large)", name)
	}
	return s, nil
}

// =============================================================================
// Grid Spec
// =============================================================================

// Spec is the immutable size of a dashboard grid.
type Spec struct {
	Cols int `json:"cols" toml:"cols"`
	Rows int `json:"rows" toml:"rows"`
}

// Validate checks that both dimensions are positive.
func (s Spec) Validate() error {
	if s.Cols <= 0 || s.Rows <= 0 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid must have positive dimensions, got %dx%d", s.Cols, s.Rows)
	}
	return nil
}

// Cells returns the number of cells in the grid.
func (s Spec) Cells() int { return s.Cols * s.Rows }

// InBounds reports whether r lies entirely inside the grid. Rectangles with a
// non-positive width or height are never in bounds.
func (s Spec) InBounds(r Rect) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= s.Cols && r.Y+r.H <= s.Rows
}

// IsFree reports whether r is in bounds and overlaps no widget in l other than
// the one whose ID is excludeID. An empty excludeID excludes nothing.
func (s Spec) IsFree(l Layout, r Rect, excludeID string) bool {
	if !s.InBounds(r) {
		return false
	}
	for _, w := range l.Widgets {
		if excludeID != "" && w.ID == excludeID {
			continue
		}
		if w.Rect().Overlaps(r) {
			return false
		}
	}
	return true
}
