package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"duview/internal/traverse"
	"duview/internal/tui/common"
	"duview/internal/tui/styles"
)

// Entries renders the ranked listing of one directory level inside a
// bordered box whose title is the path being listed. The caller fills
// the fields for every frame; the widget itself keeps no state.
type Entries struct {
	Tree    *traverse.Tree
	State   common.DisplayState
	Options common.DisplayOptions
	Theme   styles.Theme
}

// Render draws the panel into a region of the given size. Every line of
// the result is exactly area.Width cells wide and the line count equals
// area.Height, so the output can be stacked as-is.
func (e Entries) Render(area common.Rect) string {
	if area.Width < 2 || area.Height < 2 {
		return ""
	}
	innerW := area.Width - 2
	innerH := area.Height - 2

	border := lipgloss.RoundedBorder()
	left := e.Theme.Border.Render(border.Left)
	right := e.Theme.Border.Render(border.Right)

	entries := SortedEntries(e.Tree, e.State.Root, e.State.Sorting)

	var total uint64
	for _, en := range entries {
		total += en.Data.Size
	}

	offset := e.State.Offset
	if maxOffset := len(entries) - innerH; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}

	atTop := e.Tree.IsTop(e.State.Root)

	lines := make([]string, 0, area.Height)
	lines = append(lines, e.topLine(border, innerW))
	for row := 0; row < innerH; row++ {
		i := offset + row
		if i >= len(entries) {
			blank := strings.Repeat(" ", innerW)
			lines = append(lines, left+blank+right)
			continue
		}
		en := entries[i]

		var pct float64
		if total > 0 {
			pct = float64(en.Data.Size) / float64(total) * 100
		}
		marker := " "
		if en.Data.IsDir && !atTop {
			marker = "/"
		}
		text := fmt.Sprintf("%s | %5.2f%% | %s%s",
			e.Options.ByteFormat.Format(en.Data.Size), pct, marker, en.Data.Name)
		text = runewidth.Truncate(text, innerW, "")
		text = runewidth.FillRight(text, innerW)

		style := e.Theme.Entry
		if en.Data.IsDir {
			style = e.Theme.Directory
		}
		if en.Index == e.State.Selected {
			style = e.Theme.Selected
		}
		lines = append(lines, left+style.Render(text)+right)
	}
	lines = append(lines, e.bottomLine(border, innerW))

	return strings.Join(lines, "\n")
}

// topLine splices the panel title into the top border, the way a block
// title sits on the frame rather than inside it.
func (e Entries) topLine(border lipgloss.Border, innerW int) string {
	title := runewidth.Truncate(e.title(), innerW, "")
	fill := innerW - runewidth.StringWidth(title)
	return e.Theme.Border.Render(border.TopLeft) +
		e.Theme.Title.Render(title) +
		e.Theme.Border.Render(strings.Repeat(border.Top, fill)+border.TopRight)
}

func (e Entries) bottomLine(border lipgloss.Border, innerW int) string {
	return e.Theme.Border.Render(border.BottomLeft + strings.Repeat(border.Bottom, innerW) + border.BottomRight)
}

// title names the listed directory. The top of the tree has no path of
// its own, so the canonicalized working directory stands in for it.
func (e Entries) title() string {
	path := e.Tree.Path(e.State.Root)
	if path == "" {
		path = workingDirTitle()
	}
	return " " + path + " "
}

func workingDirTitle() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	resolved, err := filepath.EvalSymlinks(wd)
	if err != nil {
		return "."
	}
	return resolved
}
