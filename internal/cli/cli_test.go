package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/panelgrid/internal/config"
	"github.com/matzehuels/panelgrid/pkg/catalog"
	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/observability"
)

// workspace runs the test in an empty directory with no user config.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Cleanup(observability.Reset)
	return dir
}

// execute runs the root command and returns what it printed to stdout.
func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, log.DebugLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	if in != nil {
		root.SetIn(in)
	}
	err := root.Execute()
	t.Logf("panelgrid %s\n%s", strings.Join(args, " "), logs.String())
	return out.String(), err
}

func readDoc(t *testing.T, path string) grid.Document {
	t.Helper()
	doc, err := grid.ReadDocumentFile(path)
	require.NoError(t, err)
	return doc
}

func TestInitShowValidate(t *testing.T) {
	workspace(t)

	out, err := execute(t, nil, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created empty layout")

	doc := readDoc(t, defaultLayoutFile)
	require.NotNil(t, doc.Grid)
	assert.Equal(t, grid.Spec{Cols: 6, Rows: 4}, *doc.Grid)
	require.Equal(t, 1, doc.Layout.Len())
	fixed, ok := doc.Layout.Fixed()
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 5, Y: 0}, fixed.Anchor())

	out, err = execute(t, nil, "validate", defaultLayoutFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "23 free cells")

	out, err = execute(t, nil, "show", defaultLayoutFile)
	require.NoError(t, err)
	assert.Contains(t, out, "6x4 grid, 1 widgets")
	assert.Contains(t, out, glyphFixed)
}

func TestInitRefusesOverwrite(t *testing.T) {
	workspace(t)

	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	_, err = execute(t, nil, "init")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	_, err = execute(t, nil, "init", "--force")
	assert.NoError(t, err)
}

func TestInitWriteConfig(t *testing.T) {
	workspace(t)

	_, err := execute(t, nil, "init", "--write-config", "--cols", "8")
	require.NoError(t, err)

	cfg, err := config.Load(config.FileName + ".toml")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Grid.Cols)
	assert.Equal(t, 4, cfg.Grid.Rows)

	doc := readDoc(t, defaultLayoutFile)
	assert.Equal(t, 8, doc.Grid.Cols)
}

func TestPlaceInsertInPlace(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	out, err := execute(t, nil, "place", defaultLayoutFile, "--insert", "stats", "--at", "0,0", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "Inserted")

	out, err = execute(t, nil, "place", defaultLayoutFile, "--insert", "note", "--at", "0,0", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "(2,0)")
	assert.Contains(t, out, "requested (0,0) was not free")

	doc := readDoc(t, defaultLayoutFile)
	require.NoError(t, grid.Validate(*doc.Grid, doc.Layout))
	require.Equal(t, 3, doc.Layout.Len())

	stats, note := doc.Layout.Widgets[1], doc.Layout.Widgets[2]
	assert.True(t, strings.HasPrefix(stats.ID, "stats-"), stats.ID)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, stats.Anchor())
	assert.True(t, strings.HasPrefix(note.ID, "note-"), note.ID)
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, note.Anchor())
}

func TestPlaceMoveToStdout(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)
	_, err = execute(t, nil, "place", defaultLayoutFile, "--insert", "stats", "--at", "0,0", "-i")
	require.NoError(t, err)
	id := readDoc(t, defaultLayoutFile).Layout.Widgets[1].ID

	out, err := execute(t, nil, "place", defaultLayoutFile, "--move", id, "--at", "3,2")
	require.NoError(t, err)

	doc, err := grid.ReadDocument(strings.NewReader(out))
	require.NoError(t, err)
	w, ok := doc.Layout.Get(id)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, w.Anchor())

	// The input file is untouched.
	w, _ = readDoc(t, defaultLayoutFile).Layout.Get(id)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, w.Anchor())
}

func TestPlaceOutputFile(t *testing.T) {
	dir := workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	dest := filepath.Join(dir, "next.json")
	_, err = execute(t, nil, "place", defaultLayoutFile, "--insert", "chart", "--at", "5,3", "-o", dest)
	require.NoError(t, err)

	doc := readDoc(t, dest)
	require.Equal(t, 2, doc.Layout.Len())
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, doc.Layout.Widgets[1].Anchor())
	assert.Equal(t, 1, readDoc(t, defaultLayoutFile).Layout.Len())
}

func TestPlaceFarOutsideAnchor(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	out, err := execute(t, nil, "place", defaultLayoutFile, "--insert", "note", "--at", "1000000000,1000000000", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "(5,3)")

	w := readDoc(t, defaultLayoutFile).Layout.Widgets[1]
	assert.Equal(t, grid.Cell{X: 5, Y: 3}, w.Anchor())
}

func TestPlaceErrors(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"FixedWidget", []string{"--move", "fixed", "--at", "0,0"}, errors.ErrCodeFixedWidgetViolation},
		{"UnknownWidget", []string{"--move", "ghost", "--at", "0,0"}, errors.ErrCodeNotFound},
		{"UnknownEntry", []string{"--insert", "ghost", "--at", "0,0"}, errors.ErrCodeNotFound},
		{"BadCell", []string{"--insert", "note", "--at", "zero"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"place", defaultLayoutFile}, tt.args...)
			_, err := execute(t, nil, args...)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestNoSlotAvailable(t *testing.T) {
	workspace(t)
	cfg := "[grid]\ncols = 1\nrows = 1\n\n[fixed]\nid = \"fixed\"\nx = 0\ny = 0\n"
	require.NoError(t, os.WriteFile(config.FileName+".toml", []byte(cfg), 0o644))

	_, err := execute(t, nil, "init")
	require.NoError(t, err)
	before, err := os.ReadFile(defaultLayoutFile)
	require.NoError(t, err)

	_, err = execute(t, nil, "place", defaultLayoutFile, "--insert", "note", "--at", "0,0", "-i")
	assert.Equal(t, errors.ErrCodeNoSlotAvailable, errors.GetCode(err), "got %v", err)

	after, err := os.ReadFile(defaultLayoutFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = execute(t, nil, "find", defaultLayoutFile, "--at", "0,0", "--size", "small")
	assert.Equal(t, errors.ErrCodeNoSlotAvailable, errors.GetCode(err), "got %v", err)
}

func TestFind(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	out, err := execute(t, nil, "find", defaultLayoutFile, "--at", "5,0", "--size", "small")
	require.NoError(t, err)
	assert.Contains(t, out, "(4,0)")

	_, err = execute(t, nil, "find", defaultLayoutFile, "--at", "0,0")
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err), "got %v", err)

	_, err = execute(t, nil, "find", defaultLayoutFile, "--at", "0,0", "--size", "huge")
	assert.Equal(t, errors.ErrCodeInvalidSizeClass, errors.GetCode(err), "got %v", err)
}

func TestValidateRejectsOverlap(t *testing.T) {
	workspace(t)
	data := `{"widgets":[
		{"id":"fixed","size":"small","x":5,"y":0,"fixed":true},
		{"id":"a","size":"medium","x":0,"y":0},
		{"id":"b","size":"small","x":1,"y":0}
	]}`
	require.NoError(t, os.WriteFile("overlap.json", []byte(data), 0o644))

	_, err := execute(t, nil, "validate", "overlap.json")
	assert.Equal(t, errors.ErrCodeInvalidLayout, errors.GetCode(err), "got %v", err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestShowStdin(t *testing.T) {
	workspace(t)
	data := `{"grid":{"cols":4,"rows":2},"widgets":[
		{"id":"fixed","size":"small","x":3,"y":1,"fixed":true},
		{"id":"sales","size":"medium","x":0,"y":0}
	]}`

	out, err := execute(t, strings.NewReader(data), "show", "-", "--no-table")
	require.NoError(t, err)
	assert.Contains(t, out, "4x2 grid, 2 widgets")
	assert.Contains(t, out, "sal")
	assert.NotContains(t, out, "Kind")
}

func TestShowGridOverride(t *testing.T) {
	workspace(t)
	_, err := execute(t, nil, "init")
	require.NoError(t, err)

	out, err := execute(t, nil, "show", defaultLayoutFile, "--cols", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "8x4 grid")
}

func TestCatalogExport(t *testing.T) {
	workspace(t)

	out, err := execute(t, nil, "catalog")
	require.NoError(t, err)
	for _, id := range []string{"note", "stats", "chart"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "3 entries")

	_, err = execute(t, nil, "catalog", "--export", "widgets.yaml")
	require.NoError(t, err)
	cat, err := catalog.Load("widgets.yaml")
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Entries(), cat.Entries())

	_, err = execute(t, nil, "catalog", "--export", "widgets.ini")
	assert.Error(t, err)
}

func TestPlaceWithCustomCatalog(t *testing.T) {
	workspace(t)
	entries := []catalog.Entry{{ID: "inbox", Size: grid.Large, Title: "Inbox"}}
	data, err := catalog.Write(entries, catalog.FormatTOML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("widgets.toml", data, 0o644))

	_, err = execute(t, nil, "init")
	require.NoError(t, err)
	_, err = execute(t, nil, "--catalog", "widgets.toml", "place", defaultLayoutFile, "--insert", "inbox", "--at", "0,0", "-i")
	require.NoError(t, err)

	w := readDoc(t, defaultLayoutFile).Layout.Widgets[1]
	assert.Equal(t, grid.Large, w.Size)
	assert.True(t, strings.HasPrefix(w.ID, "inbox-"), w.ID)

	_, err = execute(t, nil, "--catalog", "widgets.toml", "place", defaultLayoutFile, "--insert", "chart", "--at", "0,0")
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err), "got %v", err)
}

func TestCompletionBash(t *testing.T) {
	workspace(t)

	out, err := execute(t, nil, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, appName)
}
