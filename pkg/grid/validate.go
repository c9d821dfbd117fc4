package grid

import (
	"github.com/matzehuels/panelgrid/pkg/errors"
)

// Validate checks that l is a well-formed layout for spec. It returns an
// INVALID_LAYOUT error describing the first violation found, or an
// INVALID_GRID error when spec itself is invalid.
//
// Checks, in order: grid dimensions, widget IDs and uniqueness, size classes
// and cached footprints, bounds, exactly one 1x1 fixed widget, and pairwise
// overlap.
func Validate(spec Spec, l Layout) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(l.Widgets))
	fixed := 0
	for _, w := range l.Widgets {
		if err := errors.ValidateID(w.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayout, err, "widget id")
		}
		if seen[w.ID] {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true

		fp, ok := FootprintOf(w.Size)
		if !ok {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has unknown size class %q", w.ID, w.Size)
		}
		if w.W != fp.W || w.H != fp.H {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q footprint %s does not match size %s (%s)",
				w.ID, w.Footprint(), w.Size, fp)
		}
		if !spec.InBounds(w.Rect()) {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q at %s (%s) is outside the %dx%d grid",
				w.ID, w.Anchor(), w.Footprint(), spec.Cols, spec.Rows)
		}
		if w.IsFixed() {
			fixed++
			if w.W != 1 || w.H != 1 {
				return errors.New(errors.ErrCodeInvalidLayout, "fixed widget %q must occupy a single cell", w.ID)
			}
		}
	}

	if fixed != 1 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout must contain exactly one fixed widget, found %d", fixed)
	}

	for i := 0; i < len(l.Widgets); i++ {
		for j := i + 1; j < len(l.Widgets); j++ {
			a, b := l.Widgets[i], l.Widgets[j]
			if a.Rect().Overlaps(b.Rect()) {
				return errors.New(errors.ErrCodeInvalidLayout, "widgets %q and %q overlap", a.ID, b.ID)
			}
		}
	}

	return nil
}
