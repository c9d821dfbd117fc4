package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/panelgrid/pkg/errors"
	"github.com/matzehuels/panelgrid/pkg/grid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// widgetColors cycles through placed widgets so neighbours stay distinct.
var widgetColors = []lipgloss.Color{
	lipgloss.Color("37"),
	lipgloss.Color("75"),
	lipgloss.Color("114"),
	lipgloss.Color("179"),
	lipgloss.Color("141"),
	lipgloss.Color("174"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleFree    = lipgloss.NewStyle().Foreground(colorDim)
	styleFixed   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	stylePreview = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleCursor  = lipgloss.NewStyle().Reverse(true)
	styleAxis    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	glyphFree    = " · "
	glyphFixed   = " ■ "
	glyphCovered = "░░░"
	glyphPreview = " + "
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// ErrorLine formats an error for the terminal: the message without its code
// prefix, followed by the code when there is one.
func ErrorLine(err error) string {
	line := styleIconError.Render(iconError) + " " + errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		line += " " + StyleDim.Render("["+string(code)+"]")
	}
	return line
}

// =============================================================================
// Grid Rendering
// =============================================================================

// gridView selects the overlays drawn on top of a layout.
type gridView struct {
	// preview marks where a drop would land.
	preview *grid.Rect
	// cursor marks the pointer cell.
	cursor *grid.Cell
	// lifted is the widget being dragged; it is drawn dimmed.
	lifted string
}

// widgetLabel is the three-column tag drawn on a widget's anchor cell.
func widgetLabel(id string) string {
	r := []rune(id)
	if len(r) > 3 {
		r = r[:3]
	}
	return fmt.Sprintf("%-3s", string(r))
}

// renderGrid draws the layout as a character grid with axis labels. Each cell
// is three columns wide; a widget shows its label on its anchor cell and fill
// on the rest of its footprint.
func renderGrid(spec grid.Spec, l grid.Layout, v gridView) string {
	colors := make(map[string]lipgloss.Style, l.Len())
	for i, w := range l.Widgets {
		colors[w.ID] = lipgloss.NewStyle().Foreground(widgetColors[i%len(widgetColors)])
	}
	occ := l.Occupancy(spec)

	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < spec.Cols; x++ {
		b.WriteString(styleAxis.Render(fmt.Sprintf(" %-3d", x)))
	}
	b.WriteString("\n")

	for y := 0; y < spec.Rows; y++ {
		b.WriteString(styleAxis.Render(fmt.Sprintf("%2d ", y)))
		for x := 0; x < spec.Cols; x++ {
			c := grid.Cell{X: x, Y: y}
			cell := renderCell(l, occ[y][x], c, colors, v)
			if v.cursor != nil && *v.cursor == c {
				cell = styleCursor.Render(cell)
			}
			b.WriteString(" " + cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(l grid.Layout, id string, c grid.Cell, colors map[string]lipgloss.Style, v gridView) string {
	if v.preview != nil && v.preview.Contains(c) {
		return stylePreview.Render(glyphPreview)
	}
	if id == "" {
		return styleFree.Render(glyphFree)
	}
	w, _ := l.Get(id)
	if w.IsFixed() {
		return styleFixed.Render(glyphFixed)
	}
	style := colors[id]
	if id == v.lifted {
		style = StyleDim
	}
	if w.Anchor() == c {
		return style.Bold(true).Render(widgetLabel(id))
	}
	return style.Render(glyphCovered)
}

// renderWidgetTable lists the widgets of a layout.
func renderWidgetTable(l grid.Layout) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, l.Len())
	for _, w := range l.Widgets {
		kind := "movable"
		if w.IsFixed() {
			kind = "fixed"
		}
		rows = append(rows, []string{widgetLabel(w.ID), w.ID, string(w.Size), w.Anchor().String(), w.Footprint().String(), kind})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Size", "Anchor", "Span", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < l.Len() {
				return lipgloss.NewStyle().Foreground(widgetColors[row%len(widgetColors)]).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
