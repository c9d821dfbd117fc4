package drag

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

var (
	dashboard = grid.Spec{Cols: 6, Rows: 4}
	smallKind = catalog.Entry{ID: "note", Size: grid.Small}
	largeKind = catalog.Entry{ID: "chart", Size: grid.Large}
)

// scenarioLayout has a medium widget M at (0,0) and the fixed widget at (5,0).
func scenarioLayout() grid.Layout {
	return grid.Layout{Widgets: []grid.Widget{
		{ID: "M", Size: grid.Medium, X: 0, Y: 0, W: 2, H: 1, Movable: true},
		grid.NewFixed("fixed", grid.Cell{X: 5, Y: 0}),
	}}
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("w%d", n)
	})
}

func TestInsertNextToOccupiedAnchor(t *testing.T) {
	c := New(dashboard, sequentialIDs())
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Insert(smallKind), grid.Cell{X: 0, Y: 0}))
	res, err := c.Drop(grid.Cell{X: 0, Y: 0})
	require.NoError(t, err)

	assert.Equal(t, StatusCommitted, res.Status)
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, res.Cell)
	assert.Equal(t, "w1", res.WidgetID)
	require.Equal(t, 3, res.Layout.Len())

	w, ok := res.Layout.Get("w1")
	require.True(t, ok)
	assert.Equal(t, grid.Widget{ID: "w1", Size: grid.Small, X: 2, Y: 0, W: 1, H: 1, Movable: true}, w)
	assert.NoError(t, grid.Validate(dashboard, res.Layout))
	assert.Equal(t, Idle, c.State())
}

func TestInsertOnFixedCell(t *testing.T) {
	c := New(dashboard, sequentialIDs())

	require.NoError(t, c.Start(scenarioLayout(), Insert(smallKind), grid.Cell{X: 5, Y: 0}))
	res, err := c.Drop(grid.Cell{X: 5, Y: 0})
	require.NoError(t, err)

	assert.Equal(t, StatusCommitted, res.Status)
	assert.NotEqual(t, grid.Cell{X: 5, Y: 0}, res.Cell)
	assert.Equal(t, grid.Cell{X: 4, Y: 0}, res.Cell)
}

func TestInsertIntoFullGrid(t *testing.T) {
	spec := grid.Spec{Cols: 1, Rows: 1}
	l := grid.NewLayout(grid.NewFixed("fixed", grid.Cell{X: 0, Y: 0}))
	c := New(spec)

	require.NoError(t, c.Start(l, Insert(smallKind), grid.Cell{}))
	res, err := c.Drop(grid.Cell{})
	require.NoError(t, err)

	assert.Equal(t, StatusNoSlotAvailable, res.Status)
	assert.True(t, res.Layout.Equal(l))
	assert.Empty(t, res.WidgetID)
	assert.Equal(t, Idle, c.State())
}

func TestMoveToFreeAnchor(t *testing.T) {
	c := New(dashboard)

	require.NoError(t, c.Start(scenarioLayout(), Move("M"), grid.Cell{X: 0, Y: 0}))
	res, err := c.Drop(grid.Cell{X: 3, Y: 2})
	require.NoError(t, err)

	assert.Equal(t, StatusCommitted, res.Status)
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, res.Cell)
	assert.Equal(t, "M", res.WidgetID)

	m, _ := res.Layout.Get("M")
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, m.Anchor())
	assert.Equal(t, 2, res.Layout.Len())
}

func TestStartWhileDragging(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Move("M"), grid.Cell{X: 0, Y: 0}))
	_, _, err := c.UpdateTarget(grid.Cell{X: 2, Y: 1})
	require.NoError(t, err)
	before, _ := c.Session()

	err = c.Start(l, Insert(largeKind), grid.Cell{X: 1, Y: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSessionState))

	after, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, Dragging, c.State())

	res, err := c.Drop(grid.Cell{X: 2, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, "M", res.WidgetID)
}

func TestDropOnOwnAnchorIsNoOp(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Move("M"), grid.Cell{X: 0, Y: 0}))
	res, err := c.Drop(grid.Cell{X: 0, Y: 0})
	require.NoError(t, err)

	assert.Equal(t, StatusCommitted, res.Status)
	assert.True(t, res.Layout.Equal(l))
}

func TestStartRejections(t *testing.T) {
	tests := []struct {
		name string
		l    grid.Layout
		src  Source
		code errors.Code
	}{
		{"FixedWidget", scenarioLayout(), Move("fixed"), errors.ErrCodeFixedWidgetViolation},
		{"UnknownWidget", scenarioLayout(), Move("nope"), errors.ErrCodeNotFound},
		{"UnknownSize", scenarioLayout(), Insert(catalog.Entry{ID: "x", Size: "huge"}), errors.ErrCodeInvalidSizeClass},
		{"EmptyEntryID", scenarioLayout(), Insert(catalog.Entry{Size: grid.Small}), errors.ErrCodeInvalidID},
		{"InvalidLayout", grid.Layout{Widgets: []grid.Widget{
			{ID: "M", Size: grid.Medium, X: 5, Y: 0, W: 2, H: 1, Movable: true},
		}}, Move("M"), errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(dashboard)
			err := c.Start(tt.l, tt.src, grid.Cell{})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
			assert.Equal(t, Idle, c.State())
			_, ok := c.Session()
			assert.False(t, ok)
		})
	}
}

func TestMisuseWhileIdle(t *testing.T) {
	c := New(dashboard)

	_, _, err := c.UpdateTarget(grid.Cell{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSessionState), "update: %v", err)

	_, err = c.Drop(grid.Cell{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSessionState), "drop: %v", err)

	err = c.Cancel()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSessionState), "cancel: %v", err)

	// A finished session leaves the controller idle again.
	require.NoError(t, c.Start(scenarioLayout(), Move("M"), grid.Cell{}))
	_, err = c.Drop(grid.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	_, err = c.Drop(grid.Cell{X: 2, Y: 2})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSessionState))
}

func TestCancel(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Insert(largeKind), grid.Cell{X: 1, Y: 1}))
	require.NoError(t, c.Cancel())
	assert.Equal(t, Idle, c.State())
	_, ok := c.CurrentPreview()
	assert.False(t, ok)

	// A new session can start immediately.
	require.NoError(t, c.Start(l, Move("M"), grid.Cell{}))
}

func TestUpdateTargetPreview(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Insert(largeKind), grid.Cell{X: 0, Y: 0}))
	_, ok := c.CurrentPreview()
	assert.False(t, ok, "no preview before the first update")

	cell, ok, err := c.UpdateTarget(grid.Cell{X: 5, Y: 3})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, cell)

	preview, ok := c.CurrentPreview()
	require.True(t, ok)
	assert.Equal(t, cell, preview)

	info, _ := c.Session()
	assert.Equal(t, grid.Cell{X: 5, Y: 3}, info.Target)
	assert.True(t, info.HasTarget)
	assert.True(t, info.Insert())
	assert.Equal(t, "chart", info.EntryID)

	res, err := c.Drop(grid.Cell{X: 5, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, preview, res.Cell)
}

func TestUpdateTargetWithoutSlot(t *testing.T) {
	spec := grid.Spec{Cols: 3, Rows: 2}
	l := grid.NewLayout(grid.NewFixed("fixed", grid.Cell{X: 1, Y: 1}))
	c := New(spec)

	require.NoError(t, c.Start(l, Insert(largeKind), grid.Cell{}))
	_, ok, err := c.UpdateTarget(grid.Cell{})
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok = c.CurrentPreview()
	assert.False(t, ok)
}

func TestCapturedLayoutIsIsolated(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Move("M"), grid.Cell{}))
	// The host changes its copy mid-drag; the session is unaffected.
	l.Widgets[0].X = 3

	res, err := c.Drop(grid.Cell{X: 0, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Widgets[0].X)

	m, _ := res.Layout.Get("M")
	assert.Equal(t, grid.Cell{X: 0, Y: 2}, m.Anchor())
}

func TestDropDoesNotMutateInput(t *testing.T) {
	c := New(dashboard)
	l := scenarioLayout()
	before := l.Clone()

	require.NoError(t, c.Start(l, Move("M"), grid.Cell{}))
	_, err := c.Drop(grid.Cell{X: 3, Y: 3})
	require.NoError(t, err)
	assert.True(t, l.Equal(before))
}

func TestDefaultIDsAreUnique(t *testing.T) {
	c := New(dashboard)
	l := grid.NewLayout(grid.NewFixed("fixed", grid.Cell{X: 5, Y: 0}))

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Start(l, Insert(smallKind), grid.Cell{}))
		res, err := c.Drop(grid.Cell{})
		require.NoError(t, err)
		require.Equal(t, StatusCommitted, res.Status)
		require.NoError(t, errors.ValidateID(res.WidgetID))
		l = res.Layout
	}
	assert.NoError(t, grid.Validate(dashboard, l))
	assert.Equal(t, 11, l.Len())
}

func TestIDGeneratorCollision(t *testing.T) {
	ids := []string{"M", "", "fresh"}
	c := New(dashboard, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	require.NoError(t, c.Start(scenarioLayout(), Insert(smallKind), grid.Cell{}))
	res, err := c.Drop(grid.Cell{})
	require.NoError(t, err)
	assert.Equal(t, "fresh", res.WidgetID)
}

func TestIDGeneratorExhausted(t *testing.T) {
	c := New(dashboard, WithIDGenerator(func() string { return "M" }))

	require.NoError(t, c.Start(scenarioLayout(), Insert(smallKind), grid.Cell{}))
	_, err := c.Drop(grid.Cell{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
	assert.Equal(t, Dragging, c.State())
	require.NoError(t, c.Cancel())
}

// TestRandomSessionsKeepInvariants drives many sessions with random sources,
// pointers and outcomes and checks the layout after every step.
func TestRandomSessionsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	entries := catalog.Default().Entries()
	c := New(dashboard, sequentialIDs())
	l := grid.NewLayout(grid.NewFixed("fixed", grid.Cell{X: 2, Y: 1}))
	fixed, _ := l.Fixed()

	randomCell := func() grid.Cell {
		return grid.Cell{X: rng.IntN(dashboard.Cols+4) - 2, Y: rng.IntN(dashboard.Rows+4) - 2}
	}

	for step := 0; step < 300; step++ {
		var src Source
		movable := make([]string, 0, l.Len())
		for _, w := range l.Widgets {
			if w.Movable {
				movable = append(movable, w.ID)
			}
		}
		if len(movable) > 0 && rng.IntN(2) == 0 {
			src = Move(movable[rng.IntN(len(movable))])
		} else {
			src = Insert(entries[rng.IntN(len(entries))])
		}

		require.NoError(t, c.Start(l, src, randomCell()), "step %d", step)
		for range rng.IntN(3) {
			_, _, err := c.UpdateTarget(randomCell())
			require.NoError(t, err)
		}

		if rng.IntN(5) == 0 {
			require.NoError(t, c.Cancel())
			continue
		}
		res, err := c.Drop(randomCell())
		require.NoError(t, err, "step %d", step)
		if res.Status == StatusNoSlotAvailable {
			require.True(t, res.Layout.Equal(l), "step %d: no-slot drop changed the layout", step)
		}
		l = res.Layout

		require.NoError(t, grid.Validate(dashboard, l), "step %d", step)
		got, ok := l.Fixed()
		require.True(t, ok)
		require.Equal(t, fixed, got, "step %d: fixed widget changed", step)
	}
}

type sessionEvent struct {
	kind     string
	widgetID string
}

type recordingHooks struct {
	events []sessionEvent
}

func (r *recordingHooks) OnStart(id string, insert bool) {
	r.events = append(r.events, sessionEvent{fmt.Sprintf("start(insert=%v)", insert), id})
}

func (r *recordingHooks) OnCommit(id string, x, y int, _ time.Duration) {
	r.events = append(r.events, sessionEvent{fmt.Sprintf("commit(%d,%d)", x, y), id})
}

func (r *recordingHooks) OnNoSlot(id string, _ time.Duration) {
	r.events = append(r.events, sessionEvent{"noslot", id})
}

func (r *recordingHooks) OnCancel(id string, _ time.Duration) {
	r.events = append(r.events, sessionEvent{"cancel", id})
}

func (r *recordingHooks) OnRejected(op string, _ error) {
	r.events = append(r.events, sessionEvent{"rejected " + op, ""})
}

func TestHooks(t *testing.T) {
	rec := &recordingHooks{}
	c := New(dashboard, WithHooks(rec), sequentialIDs())
	l := scenarioLayout()

	require.NoError(t, c.Start(l, Insert(smallKind), grid.Cell{}))
	_, err := c.Drop(grid.Cell{})
	require.NoError(t, err)

	require.NoError(t, c.Start(l, Move("M"), grid.Cell{}))
	require.NoError(t, c.Cancel())

	_ = c.Cancel()
	_ = c.Start(l, Move("fixed"), grid.Cell{})

	full := grid.Spec{Cols: 1, Rows: 1}
	c2 := New(full, WithHooks(rec))
	require.NoError(t, c2.Start(grid.NewLayout(grid.NewFixed("fixed", grid.Cell{})), Insert(smallKind), grid.Cell{}))
	_, err = c2.Drop(grid.Cell{})
	require.NoError(t, err)

	assert.Equal(t, []sessionEvent{
		{"start(insert=true)", ""},
		{"commit(2,0)", "w1"},
		{"start(insert=false)", "M"},
		{"cancel", "M"},
		{"rejected cancel", ""},
		{"rejected start", ""},
		{"start(insert=true)", ""},
		{"noslot", ""},
	}, rec.events)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "committed", StatusCommitted.String())
	assert.Equal(t, "no slot available", StatusNoSlotAvailable.String())
	assert.Equal(t, "move M", Move("M").String())
	assert.Equal(t, "insert note", Insert(smallKind).String())
}
