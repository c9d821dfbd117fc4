package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/panelgrid/pkg/errors"
)

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// file is the on-disk shape shared by both encodings:
//
//	[[widgets]]
//	id = "stats"
//	size = "medium"
type file struct {
	Widgets []Entry `toml:"widgets" yaml:"widgets"`
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidCatalog, "unsupported catalog file %q (want .toml, .yaml or .yml)", path)
	}
}

// Load reads a catalog file, choosing the decoder by extension.
func Load(path string) (*Static, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read %s", path)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "load %s", path)
	}
	return s, nil
}

// Parse decodes catalog data in the given format.
func Parse(data []byte, format Format) (*Static, error) {
	var f file
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode toml")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown format %q", format)
	}
	if len(f.Widgets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no widgets")
	}
	return NewStatic(f.Widgets...)
}

// Write encodes entries in the given format.
func Write(entries []Entry, format Format) ([]byte, error) {
	f := file{Widgets: entries}
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown format %q", format)
	}
	return buf.Bytes(), nil
}
