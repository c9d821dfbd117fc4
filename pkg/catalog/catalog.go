// Package catalog supplies the widget metadata a dashboard can insert.
//
// The placement engine reads only [Entry.ID] and [Entry.Size]; titles and
// descriptions are for hosts that list the catalog. Any type implementing
// [Catalog] can back an insert. [Static] is a read-only in-memory catalog,
// loaded from a TOML or YAML file with [Load] or built in with [Default].
package catalog

import (
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// Catalog looks up insertable widget kinds.
type Catalog interface {
	// Lookup returns the entry with the given ID.
	Lookup(id string) (Entry, bool)

	// Entries returns all entries in catalog order.
	Entries() []Entry
}

// Entry describes one insertable widget kind.
type Entry struct {
	ID          string         `toml:"id" yaml:"id"`
	Size        grid.SizeClass `toml:"size" yaml:"size"`
	Title       string         `toml:"title,omitempty" yaml:"title,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Footprint returns the footprint of the entry's size class.
func (e Entry) Footprint() (grid.Footprint, bool) {
	return grid.FootprintOf(e.Size)
}

// Label returns the title, or the ID when the entry has none.
func (e Entry) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

// Validate checks the entry's ID and size class.
func (e Entry) Validate() error {
	if err := errors.ValidateID(e.ID); err != nil {
		return err
	}
	if _, err := grid.ParseSizeClass(string(e.Size)); err != nil {
		return err
	}
	return nil
}

// Static is an immutable catalog backed by a slice.
type Static struct {
	entries []Entry
	index   map[string]int
}

var _ Catalog = (*Static)(nil)

// NewStatic builds a catalog from entries, keeping their order. Every entry is
// validated and IDs must be unique.
func NewStatic(entries ...Entry) (*Static, error) {
	s := &Static{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "entry %d", i)
		}
		if _, dup := s.index[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate entry id %q", e.ID)
		}
		s.index[e.ID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Lookup implements [Catalog].
func (s *Static) Lookup(id string) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries implements [Catalog]. The returned slice is a copy.
func (s *Static) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Static) Len() int { return len(s.entries) }

// Default returns the built-in catalog used when no catalog file is
// configured. It has one entry per size class.
func Default() *Static {
	s, err := NewStatic(
		Entry{ID: "note", Size: grid.Small, Title: "Note", Description: "A short pinned note"},
		Entry{ID: "stats", Size: grid.Medium, Title: "Stats", Description: "Key figures at a glance"},
		Entry{ID: "chart", Size: grid.Large, Title: "Chart", Description: "Trend chart"},
	)
	if err != nil {
		panic(err)
	}
	return s
}
