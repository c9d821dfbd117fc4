package drag

import (
	"time"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// State is the controller's position in the session state machine.
type State int

// Committed and Cancelled are transient: they are entered and left within a
// single Drop or Cancel call.
const (
	Idle State = iota
	Dragging
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Source is what a session drags: an existing widget or a new catalog entry.
type Source struct {
	widgetID string
	entry    catalog.Entry
	insert   bool
}

// Move drags the placed widget with the given ID.
func Move(widgetID string) Source { return Source{widgetID: widgetID} }

// Insert drags a new widget of the entry's kind.
func Insert(e catalog.Entry) Source { return Source{entry: e, insert: true} }

// IsInsert reports whether the source is a new catalog entry.
func (s Source) IsInsert() bool { return s.insert }

// String describes the source for logs.
func (s Source) String() string {
	if s.insert {
		return "insert " + s.entry.ID
	}
	return "move " + s.widgetID
}

// SessionInfo is a read-only view of the active session.
type SessionInfo struct {
	// WidgetID is the dragged widget, or "" for an insert.
	WidgetID string
	// EntryID is the catalog entry being inserted, or "" for a move.
	EntryID   string
	Size      grid.SizeClass
	Footprint grid.Footprint
	Origin    grid.Cell
	// Target is the last pointer cell passed to UpdateTarget; HasTarget is
	// false until the first call.
	Target    grid.Cell
	HasTarget bool
	Started   time.Time
}

// Insert reports whether the session creates a new widget.
func (s SessionInfo) Insert() bool { return s.WidgetID == "" }

// session is the controller's private mutable session record.
type session struct {
	info       SessionInfo
	layout     grid.Layout
	preview    grid.Cell
	hasPreview bool
}

// Status is the outcome of a drop.
type Status int

const (
	// StatusCommitted means the layout changed and Cell holds the widget's
	// new anchor.
	StatusCommitted Status = iota
	// StatusNoSlotAvailable means no free cell was found; Layout is the
	// captured layout, unchanged.
	StatusNoSlotAvailable
)

func (s Status) String() string {
	if s == StatusCommitted {
		return "committed"
	}
	return "no slot available"
}

// DropResult is the outcome of [Controller.Drop].
type DropResult struct {
	Status Status
	// Layout is the new layout on commit, or the captured layout otherwise.
	Layout grid.Layout
	// Cell is the resolved anchor; zero when Status is NoSlotAvailable.
	Cell grid.Cell
	// WidgetID is the moved widget or the ID given to an inserted one.
	WidgetID string
}
