package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelgrid/pkg/grid"
	"github.com/matzehuels/panelgrid/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Placed chart at (2,0) (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks forwards engine events to the CLI logger. Searches and session
// starts are debug output; outcomes are logged at info level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.SearchHooks  = logHooks{}
	_ observability.SessionHooks = logHooks{}
)

func (h logHooks) OnSearch(anchorX, anchorY, w, hh, probes int, found bool, x, y int, d time.Duration) {
	anchor := grid.Cell{X: anchorX, Y: anchorY}
	fp := grid.Footprint{W: w, H: hh}
	if !found {
		h.logger.Debug("Search found no slot", "anchor", anchor, "footprint", fp, "probes", probes, "took", d)
		return
	}
	h.logger.Debug("Search resolved", "anchor", anchor, "footprint", fp, "cell", grid.Cell{X: x, Y: y}, "probes", probes, "took", d)
}

func (h logHooks) OnStart(widgetID string, insert bool) {
	if insert {
		h.logger.Debug("Drag started", "op", "insert")
		return
	}
	h.logger.Debug("Drag started", "op", "move", "widget", widgetID)
}

func (h logHooks) OnCommit(widgetID string, x, y int, d time.Duration) {
	h.logger.Info("Drop committed", "widget", widgetID, "cell", grid.Cell{X: x, Y: y}, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnNoSlot(widgetID string, d time.Duration) {
	h.logger.Warn("No slot available", "widget", widgetID, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCancel(widgetID string, d time.Duration) {
	h.logger.Info("Drag cancelled", "widget", widgetID, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRejected(op string, err error) {
	h.logger.Debug("Operation rejected", "op", op, "err", err)
}
