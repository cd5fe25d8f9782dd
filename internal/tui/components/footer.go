package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"duview/internal/tui/common"
	"duview/internal/tui/styles"
)

// Footer summarizes the traversal on a single inverted status line. A
// nil Total or Entries is not known yet and shows as a dash.
type Footer struct {
	Total   *uint64
	Entries *uint64
	Stale   bool
	Options common.DisplayOptions
	Theme   styles.Theme
}

// Render draws the footer. The region must be exactly one line high;
// anything else is a bug in the caller's layout, not a state this
// widget can draw its way out of.
func (f Footer) Render(area common.Rect) string {
	if area.Height != 1 {
		panic("the footer region must be exactly one line")
	}

	total := "-"
	if f.Total != nil {
		total = strings.TrimSpace(f.Options.ByteFormat.Format(*f.Total))
	}
	count := "-"
	if f.Entries != nil {
		count = strconv.FormatUint(*f.Entries, 10)
	}

	text := fmt.Sprintf("Total disk usage: %s  Entries: %s", total, count)
	if f.Stale {
		text += "  (tree changed on disk, press r to rescan)"
	}
	text = " " + text
	text = runewidth.Truncate(text, area.Width, "")
	text = runewidth.FillRight(text, area.Width)
	return f.Theme.Footer.Render(text)
}
