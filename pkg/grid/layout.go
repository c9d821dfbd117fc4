package grid

import (
	"slices"

	"github.com/matzehuels/panelgrid/pkg/errors"
)

// =============================================================================
// Widget
// =============================================================================

// Widget is a placed widget instance. (X,Y) is the top-left cell; (W,H) is the
// footprint of Size, cached on the instance.
type Widget struct {
	ID      string
	Size    SizeClass
	X, Y    int
	W, H    int
	Movable bool
}

// NewWidget creates a movable widget of the given size anchored at c.
func NewWidget(id string, size SizeClass, c Cell) (Widget, error) {
	if err := errors.ValidateID(id); err != nil {
		return Widget{}, err
	}
	fp, ok := FootprintOf(size)
	if !ok {
		return Widget{}, errors.New(errors.ErrCodeInvalidSizeClass, "unknown size class %q", size)
	}
	return Widget{ID: id, Size: size, X: c.X, Y: c.Y, W: fp.W, H: fp.H, Movable: true}, nil
}

// NewFixed creates the reserved, non-movable single-cell widget.
func NewFixed(id string, c Cell) Widget {
	return Widget{ID: id, Size: Small, X: c.X, Y: c.Y, W: 1, H: 1}
}

// Rect returns the cells covered by the widget.
func (w Widget) Rect() Rect { return Rect{X: w.X, Y: w.Y, W: w.W, H: w.H} }

// Anchor returns the widget's top-left cell.
func (w Widget) Anchor() Cell { return Cell{X: w.X, Y: w.Y} }

// Footprint returns the widget's cached footprint.
func (w Widget) Footprint() Footprint { return Footprint{W: w.W, H: w.H} }

// IsFixed reports whether w is the reserved non-movable widget.
func (w Widget) IsFixed() bool { return !w.Movable }

// =============================================================================
// Layout
// =============================================================================

// Layout is the ordered set of placed widgets, keyed by ID.
//
// Layouts are values owned by the host. Functions in this module never modify
// a Layout they receive; they return a new one instead.
type Layout struct {
	Widgets []Widget
}

// NewLayout creates a layout containing only the fixed widget.
func NewLayout(fixed Widget) Layout {
	return Layout{Widgets: []Widget{fixed}}
}

// Len returns the number of widgets.
func (l Layout) Len() int { return len(l.Widgets) }

// Index returns the position of the widget with the given ID, or -1.
func (l Layout) Index(id string) int {
	return slices.IndexFunc(l.Widgets, func(w Widget) bool { return w.ID == id })
}

// Get returns the widget with the given ID.
func (l Layout) Get(id string) (Widget, bool) {
	if i := l.Index(id); i >= 0 {
		return l.Widgets[i], true
	}
	return Widget{}, false
}

// Has reports whether a widget with the given ID exists.
func (l Layout) Has(id string) bool { return l.Index(id) >= 0 }

// Fixed returns the first non-movable widget.
func (l Layout) Fixed() (Widget, bool) {
	for _, w := range l.Widgets {
		if w.IsFixed() {
			return w, true
		}
	}
	return Widget{}, false
}

// At returns the widget covering cell c.
func (l Layout) At(c Cell) (Widget, bool) {
	for _, w := range l.Widgets {
		if w.Rect().Contains(c) {
			return w, true
		}
	}
	return Widget{}, false
}

// Clone returns a layout with its own copy of the widget slice.
func (l Layout) Clone() Layout {
	return Layout{Widgets: slices.Clone(l.Widgets)}
}

// Equal reports whether both layouts hold the same widgets in the same order.
func (l Layout) Equal(o Layout) bool {
	return slices.Equal(l.Widgets, o.Widgets)
}

// Occupancy returns a Rows×Cols matrix holding the ID of the widget covering
// each cell, or "" for free cells. Cells outside the grid are ignored.
func (l Layout) Occupancy(spec Spec) [][]string {
	m := make([][]string, max(spec.Rows, 0))
	for y := range m {
		m[y] = make([]string, max(spec.Cols, 0))
	}
	for _, w := range l.Widgets {
		for y := w.Y; y < w.Y+w.H; y++ {
			for x := w.X; x < w.X+w.W; x++ {
				if y >= 0 && y < spec.Rows && x >= 0 && x < spec.Cols {
					m[y][x] = w.ID
				}
			}
		}
	}
	return m
}

// FreeCells counts cells not covered by any widget.
func (l Layout) FreeCells(spec Spec) int {
	free := 0
	for _, row := range l.Occupancy(spec) {
		for _, id := range row {
			if id == "" {
				free++
			}
		}
	}
	return free
}
