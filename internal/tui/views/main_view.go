package views

import (
	"github.com/charmbracelet/lipgloss"

	"duview/internal/traverse"
	"duview/internal/tui/common"
	"duview/internal/tui/components"
	"duview/internal/tui/styles"
)

// maxEntryRows caps the entries panel; no real terminal is taller and
// the cap keeps per-frame work bounded on absurd window sizes.
const maxEntryRows = 256

// MainWindow stacks the entries panel above the one-line summary
// footer. Like the widgets it is rebuilt from model state every frame.
type MainWindow struct {
	Tree    *traverse.Tree
	State   common.DisplayState
	Options common.DisplayOptions
	Theme   styles.Theme

	Total   *uint64
	Entries *uint64
	Stale   bool
}

// Render lays the two regions out vertically: the entries panel takes
// the height minus one, capped at maxEntryRows, and the footer always
// gets exactly one line.
func (w MainWindow) Render(area common.Rect) string {
	if area.Width <= 0 || area.Height <= 0 {
		return ""
	}

	entriesH := area.Height - 1
	if entriesH > maxEntryRows {
		entriesH = maxEntryRows
	}

	footer := components.Footer{
		Total:   w.Total,
		Entries: w.Entries,
		Stale:   w.Stale,
		Options: w.Options,
		Theme:   w.Theme,
	}.Render(common.Rect{Width: area.Width, Height: 1})

	panel := components.Entries{
		Tree:    w.Tree,
		State:   w.State,
		Options: w.Options,
		Theme:   w.Theme,
	}.Render(common.Rect{Width: area.Width, Height: entriesH})

	if panel == "" {
		// Too little room for a bordered panel; the footer survives.
		return footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, footer)
}

// VisibleRows reports how many listing rows fit for a terminal of the
// given height, which the model needs to keep the selection scrolled
// into view.
func VisibleRows(height int) int {
	entriesH := height - 1
	if entriesH > maxEntryRows {
		entriesH = maxEntryRows
	}
	rows := entriesH - 2
	if rows < 0 {
		rows = 0
	}
	return rows
}
