package drag

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/observability"
	"github.com/matzehuels/panelgrid/pkg/placement"
)

// maxIDAttempts bounds retries when a generated widget ID is already taken.
const maxIDAttempts = 8

// Controller drives drag sessions on a grid of fixed size.
type Controller struct {
	spec   grid.Spec
	state  State
	sess   *session
	newID  func() string
	hooks  observability.SessionHooks
	search placement.Searcher
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator sets the function that names inserted widgets. The default
// generates UUIDv7 strings. Generated IDs that are invalid or already in the
// layout are retried a few times before the drop fails.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithHooks sets the session hooks. Without it the globally registered
// [observability.Session] hooks are used.
func WithHooks(h observability.SessionHooks) Option {
	return func(c *Controller) { c.hooks = h }
}

// WithSearchHooks sets the hooks that receive placement searches run by the
// controller. Without it the globally registered [observability.Search] hooks
// are used.
func WithSearchHooks(h observability.SearchHooks) Option {
	return func(c *Controller) { c.search.Hooks = h }
}

// New creates an idle controller for grids of the given size.
func New(spec grid.Spec, opts ...Option) *Controller {
	c := &Controller{spec: spec, newID: newUUID}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Spec returns the grid the controller places on.
func (c *Controller) Spec() grid.Spec { return c.spec }

// State returns the current state. Outside of a call this is Idle or Dragging.
func (c *Controller) State() State { return c.state }

// Session returns a view of the active session.
func (c *Controller) Session() (SessionInfo, bool) {
	if c.sess == nil {
		return SessionInfo{}, false
	}
	return c.sess.info, true
}

// Start begins a session dragging src over l. The layout is validated and
// captured; later changes to l do not affect the session.
//
// Start fails with INVALID_SESSION_STATE while another session is active,
// FIXED_WIDGET_VIOLATION when src names the fixed widget, NOT_FOUND when src
// names no widget in l, and INVALID_SIZE_CLASS or INVALID_ID for a bad
// catalog entry. A failed Start changes nothing.
func (c *Controller) Start(l grid.Layout, src Source, origin grid.Cell) error {
	if c.state != Idle {
		return c.reject("start", errors.New(errors.ErrCodeInvalidSessionState,
			"start called while %s", c.state))
	}
	if err := grid.Validate(c.spec, l); err != nil {
		return c.reject("start", err)
	}

	info := SessionInfo{Origin: origin, Started: time.Now()}
	if src.insert {
		if err := src.entry.Validate(); err != nil {
			return c.reject("start", err)
		}
		info.EntryID = src.entry.ID
		info.Size = src.entry.Size
		info.Footprint, _ = src.entry.Footprint()
	} else {
		w, ok := l.Get(src.widgetID)
		if !ok {
			return c.reject("start", errors.New(errors.ErrCodeNotFound,
				"widget %q not in layout", src.widgetID))
		}
		if w.IsFixed() {
			return c.reject("start", errors.New(errors.ErrCodeFixedWidgetViolation,
				"widget %q is fixed and cannot be dragged", w.ID))
		}
		info.WidgetID = w.ID
		info.Size = w.Size
		info.Footprint = w.Footprint()
	}

	c.sess = &session{info: info, layout: l.Clone()}
	c.state = Dragging
	c.sessionHooks().OnStart(info.WidgetID, src.insert)
	return nil
}

// UpdateTarget records the cell under the pointer and returns where a drop
// there would land. It never changes the layout.
func (c *Controller) UpdateTarget(pointer grid.Cell) (grid.Cell, bool, error) {
	if c.state != Dragging {
		return grid.Cell{}, false, c.reject("update", errors.New(errors.ErrCodeInvalidSessionState,
			"update called while %s", c.state))
	}
	s := c.sess
	s.info.Target = pointer
	s.info.HasTarget = true
	s.preview, s.hasPreview = c.search.Find(s.layout, c.spec, pointer, s.info.Footprint, s.info.WidgetID)
	return s.preview, s.hasPreview, nil
}

// CurrentPreview returns the cell the last UpdateTarget resolved to. It
// reports false when no session is active, no target was set yet, or the last
// target had no free slot.
func (c *Controller) CurrentPreview() (grid.Cell, bool) {
	if c.state != Dragging || !c.sess.hasPreview {
		return grid.Cell{}, false
	}
	return c.sess.preview, true
}

// Drop ends the session at pointer. On success the returned layout is a new
// value with the widget moved or inserted; the captured layout is untouched.
// When no slot exists the result carries StatusNoSlotAvailable and the
// captured layout, and the error is nil. Either way the controller returns to
// Idle. The only failing drop after a valid Start is an insert whose ID
// generator keeps producing taken IDs; the session then stays active.
func (c *Controller) Drop(pointer grid.Cell) (DropResult, error) {
	if c.state != Dragging {
		return DropResult{}, c.reject("drop", errors.New(errors.ErrCodeInvalidSessionState,
			"drop called while %s", c.state))
	}
	s := c.sess
	cell, ok := c.search.Find(s.layout, c.spec, pointer, s.info.Footprint, s.info.WidgetID)
	if !ok {
		c.state = Cancelled
		c.finish()
		c.sessionHooks().OnNoSlot(s.info.WidgetID, time.Since(s.info.Started))
		return DropResult{Status: StatusNoSlotAvailable, Layout: s.layout, WidgetID: s.info.WidgetID}, nil
	}

	out := s.layout.Clone()
	id := s.info.WidgetID
	if id == "" {
		var err error
		if id, err = c.freshID(out); err != nil {
			return DropResult{}, c.reject("drop", err)
		}
		out.Widgets = append(out.Widgets, grid.Widget{
			ID:      id,
			Size:    s.info.Size,
			X:       cell.X,
			Y:       cell.Y,
			W:       s.info.Footprint.W,
			H:       s.info.Footprint.H,
			Movable: true,
		})
	} else {
		i := out.Index(id)
		out.Widgets[i].X, out.Widgets[i].Y = cell.X, cell.Y
	}

	c.state = Committed
	c.finish()
	c.sessionHooks().OnCommit(id, cell.X, cell.Y, time.Since(s.info.Started))
	return DropResult{Status: StatusCommitted, Layout: out, Cell: cell, WidgetID: id}, nil
}

// Cancel discards the active session.
func (c *Controller) Cancel() error {
	if c.state != Dragging {
		return c.reject("cancel", errors.New(errors.ErrCodeInvalidSessionState,
			"cancel called while %s", c.state))
	}
	s := c.sess
	c.state = Cancelled
	c.finish()
	c.sessionHooks().OnCancel(s.info.WidgetID, time.Since(s.info.Started))
	return nil
}

// finish clears the session after a terminal state.
func (c *Controller) finish() {
	c.sess = nil
	c.state = Idle
}

func (c *Controller) freshID(l grid.Layout) (string, error) {
	for range maxIDAttempts {
		id := c.newID()
		if errors.ValidateID(id) == nil && !l.Has(id) {
			return id, nil
		}
	}
	return "", errors.New(errors.ErrCodeInternal,
		"could not generate a unique widget id after %d attempts", maxIDAttempts)
}

func (c *Controller) reject(op string, err error) error {
	c.sessionHooks().OnRejected(op, err)
	return err
}

func (c *Controller) sessionHooks() observability.SessionHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.Session()
}
