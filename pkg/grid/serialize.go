package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/panelgrid/pkg/errors"
)

// =============================================================================
// Wire Format
// =============================================================================

// Document is a layout together with the grid it was built for. The grid is
// optional on the wire; hosts fall back to their configured grid when it is
// absent.
type Document struct {
	Grid   *Spec
	Layout Layout
}

type documentJSON struct {
	Grid    *Spec        `json:"grid,omitempty"`
	Widgets []widgetJSON `json:"widgets"`
}

// widgetJSON stores the fixed flag instead of "movable" so that omitting the
// field yields an ordinary movable widget.
type widgetJSON struct {
	ID    string `json:"id"`
	Size  string `json:"size"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Fixed bool   `json:"fixed,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalLayout converts a layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(Document{Layout: l}, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayout writes a layout as JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	return WriteDocument(Document{Layout: l}, w)
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	out := documentJSON{Grid: d.Grid, Widgets: make([]widgetJSON, 0, len(d.Layout.Widgets))}
	for _, wd := range d.Layout.Widgets {
		out.Widgets = append(out.Widgets, widgetJSON{
			ID:    wd.ID,
			Size:  string(wd.Size),
			X:     wd.X,
			Y:     wd.Y,
			W:     wd.W,
			H:     wd.H,
			Fixed: !wd.Movable,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDocumentFile writes a document to a JSON file with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	return WriteDocumentFile(Document{Layout: l}, path)
}

// ReadLayout decodes a JSON layout from an io.Reader. Any grid in the input is
// ignored; use ReadDocument to keep it.
func ReadLayout(r io.Reader) (Layout, error) {
	d, err := ReadDocument(r)
	if err != nil {
		return Layout{}, err
	}
	return d.Layout, nil
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	d, err := ReadDocumentFile(path)
	if err != nil {
		return Layout{}, err
	}
	return d.Layout, nil
}

// ReadDocumentFile reads a document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// ReadDocument decodes a JSON document. Size names are checked and missing
// footprints are filled in from the size table; a footprint that disagrees with
// its size is kept so that Validate can report it. Decoding does not check
// bounds or overlap.
func ReadDocument(r io.Reader) (Document, error) {
	var data documentJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout")
	}

	l := Layout{Widgets: make([]Widget, 0, len(data.Widgets))}
	for i, wj := range data.Widgets {
		size, err := ParseSizeClass(wj.Size)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "widget %d (%q)", i, wj.ID)
		}
		w := Widget{
			ID:      wj.ID,
			Size:    size,
			X:       wj.X,
			Y:       wj.Y,
			W:       wj.W,
			H:       wj.H,
			Movable: !wj.Fixed,
		}
		if w.W == 0 && w.H == 0 {
			fp, _ := FootprintOf(size)
			w.W, w.H = fp.W, fp.H
		}
		l.Widgets = append(l.Widgets, w)
	}
	return Document{Grid: data.Grid, Layout: l}, nil
}
