package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/drag"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/observability"
)

// =============================================================================
// Key Bindings
// =============================================================================

// playKeyMap defines the key bindings of the interactive board.
type playKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Grab      key.Binding
	Insert    key.Binding
	NextEntry key.Binding
	PrevEntry key.Binding
	Cancel    key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultPlayKeys() playKeyMap {
	return playKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Grab: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "grab/drop"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		NextEntry: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next widget"),
		),
		PrevEntry: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous widget"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Insert, k.NextEntry, k.Cancel, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Grab, k.Insert, k.NextEntry, k.PrevEntry},
		{k.Cancel, k.Save, k.Help, k.Quit},
	}
}

// =============================================================================
// PlayModel - Interactive board
// =============================================================================

var (
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	playEntryStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// playModel is the bubbletea model for the interactive board. The cursor
// stands in for the pointer: moving it while dragging updates the preview.
type playModel struct {
	keys playKeyMap
	help help.Model

	spec    grid.Spec
	layout  grid.Layout
	entries []catalog.Entry
	entry   int

	ctrl *drag.Controller
	// inserting is the entry of the active insert. All copies of the model
	// share it with the controller's ID generator.
	inserting *catalog.Entry
	cursor    grid.Cell
	// grab is the cursor's offset from the dragged widget's anchor.
	grab grid.Cell

	save   func(grid.Layout) error
	dirty  bool
	status string
	failed bool
}

func newPlayModel(spec grid.Spec, l grid.Layout, entries []catalog.Entry, save func(grid.Layout) error) playModel {
	inserting := &catalog.Entry{}
	return playModel{
		keys:    defaultPlayKeys(),
		help:    help.New(),
		spec:    spec,
		layout:  l,
		entries: entries,
		ctrl: drag.New(spec,
			drag.WithHooks(observability.NoopSessionHooks{}),
			drag.WithSearchHooks(observability.NoopSearchHooks{}),
			drag.WithIDGenerator(func() string { return entryIDs(*inserting)() }),
		),
		inserting: inserting,
		save:      save,
		status:    "Move the cursor onto a widget and press enter, or press i to insert.",
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.ctrl.State() == drag.Dragging {
				_ = m.ctrl.Cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(0, -1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(0, 1)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(1, 0)
		case key.Matches(msg, m.keys.Grab):
			if m.ctrl.State() == drag.Dragging {
				m.drop()
			} else {
				m.grabAtCursor()
			}
		case key.Matches(msg, m.keys.Insert):
			m.startInsert()
		case key.Matches(msg, m.keys.NextEntry):
			m.cycleEntry(1)
		case key.Matches(msg, m.keys.PrevEntry):
			m.cycleEntry(-1)
		case key.Matches(msg, m.keys.Cancel):
			if m.ctrl.State() == drag.Dragging {
				_ = m.ctrl.Cancel()
				m.setStatus("Drag cancelled.")
			}
		case key.Matches(msg, m.keys.Save):
			m.saveLayout()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *playModel) moveCursor(dx, dy int) {
	m.cursor.X = min(max(m.cursor.X+dx, 0), m.spec.Cols-1)
	m.cursor.Y = min(max(m.cursor.Y+dy, 0), m.spec.Rows-1)
	if m.ctrl.State() == drag.Dragging {
		_, _, _ = m.ctrl.UpdateTarget(m.pointer())
	}
}

// pointer is the anchor the dragged widget would take under the cursor.
func (m *playModel) pointer() grid.Cell {
	return grid.Cell{X: m.cursor.X - m.grab.X, Y: m.cursor.Y - m.grab.Y}
}

func (m *playModel) grabAtCursor() {
	w, ok := m.layout.At(m.cursor)
	if !ok {
		m.setStatus("Nothing to grab here. Press i to insert %s.", m.currentEntry().Label())
		return
	}
	if err := m.ctrl.Start(m.layout, drag.Move(w.ID), m.cursor); err != nil {
		m.setError(err)
		return
	}
	m.grab = grid.Cell{X: m.cursor.X - w.X, Y: m.cursor.Y - w.Y}
	_, _, _ = m.ctrl.UpdateTarget(m.pointer())
	m.setStatus("Dragging %s. Move and press enter to drop, esc to cancel.", w.ID)
}

func (m *playModel) startInsert() {
	if m.ctrl.State() == drag.Dragging || len(m.entries) == 0 {
		return
	}
	e := m.currentEntry()
	*m.inserting = e
	if err := m.ctrl.Start(m.layout, drag.Insert(e), m.cursor); err != nil {
		m.setError(err)
		return
	}
	m.grab = grid.Cell{}
	_, _, _ = m.ctrl.UpdateTarget(m.pointer())
	m.setStatus("Inserting %s. Move and press enter to drop, esc to cancel.", e.Label())
}

func (m *playModel) drop() {
	res, err := m.ctrl.Drop(m.pointer())
	if err != nil {
		m.setError(err)
		return
	}
	if res.Status == drag.StatusNoSlotAvailable {
		m.setError(errors.New(errors.ErrCodeNoSlotAvailable, "no free slot, layout unchanged"))
		return
	}
	m.layout = res.Layout
	m.dirty = true
	m.cursor = res.Cell
	m.grab = grid.Cell{}
	m.setStatus("Placed %s at %s.", res.WidgetID, res.Cell)
}

func (m *playModel) cycleEntry(step int) {
	if len(m.entries) == 0 || m.ctrl.State() == drag.Dragging {
		return
	}
	m.entry = (m.entry + step + len(m.entries)) % len(m.entries)
}

func (m *playModel) currentEntry() catalog.Entry {
	if len(m.entries) == 0 {
		return catalog.Entry{}
	}
	return m.entries[m.entry]
}

func (m *playModel) saveLayout() {
	if m.save == nil {
		m.setStatus("This board cannot be saved.")
		return
	}
	if err := m.save(m.layout); err != nil {
		m.setError(err)
		return
	}
	m.dirty = false
	m.setStatus("Saved.")
}

func (m *playModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *playModel) setError(err error) {
	m.status = errors.UserMessage(err)
	m.failed = true
}

func (m playModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s grid · %d widgets", gridLabel(m.spec), m.layout.Len())
	if m.dirty {
		title += " · unsaved"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	v := gridView{cursor: &m.cursor}
	if info, ok := m.ctrl.Session(); ok {
		v.lifted = info.WidgetID
		if cell, ok := m.ctrl.CurrentPreview(); ok {
			r := grid.RectAt(cell, info.Footprint)
			v.preview = &r
		}
	}
	b.WriteString(renderGrid(m.spec, m.layout, v))
	b.WriteString("\n")

	if e := m.currentEntry(); e.ID != "" {
		b.WriteString(StyleDim.Render("insert: "))
		b.WriteString(playEntryStyle.Render(e.Label()))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" (%s) [%d/%d]", e.Size, m.entry+1, len(m.entries))))
		b.WriteString("\n")
	}

	if m.failed {
		b.WriteString(playErrorStyle.Render(iconError + " " + m.status))
	} else {
		b.WriteString(playStatusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
