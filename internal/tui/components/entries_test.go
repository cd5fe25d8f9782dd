package components_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duview/internal/traverse"
	"duview/internal/tui/common"
	"duview/internal/tui/components"
	"duview/internal/tui/styles"
)

// dataTree is a level with two directories and a file adding up to a
// round total, so the percentage column is easy to predict.
func dataTree(t *testing.T) (*traverse.Tree, traverse.NodeIndex, traverse.NodeIndex) {
	t.Helper()
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/data", IsDir: true, Size: 1000})
	big := tree.AddNode(root, traverse.EntryData{Name: "big", Size: 600, IsDir: true})
	tree.AddNode(root, traverse.EntryData{Name: "mid", Size: 300, IsDir: true})
	tree.AddNode(root, traverse.EntryData{Name: "tiny.bin", Size: 100})
	return tree, root, big
}

func row(content string, innerW int) string {
	return "│" + runewidth.FillRight(content, innerW) + "│"
}

func TestEntriesRender(t *testing.T) {
	tree, root, _ := dataTree(t)
	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	out := panel.Render(common.Rect{Width: 40, Height: 6})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "╭ /data "+strings.Repeat("─", 31)+"╮", lines[0])
	assert.Equal(t, row("600 B | 60.00% | /big", 38), lines[1])
	assert.Equal(t, row("300 B | 30.00% | /mid", 38), lines[2])
	assert.Equal(t, row("100 B | 10.00% |  tiny.bin", 38), lines[3])
	assert.Equal(t, row("", 38), lines[4])
	assert.Equal(t, "╰"+strings.Repeat("─", 38)+"╯", lines[5])
}

func TestEntriesRenderAscending(t *testing.T) {
	tree, root, _ := dataTree(t)
	panel := components.Entries{
		Tree: tree,
		State: common.DisplayState{
			Root:     root,
			Selected: traverse.NoNode,
			Sorting:  common.SizeAscending,
		},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 40, Height: 6}), "\n")
	assert.Equal(t, row("100 B | 10.00% |  tiny.bin", 38), lines[1])
	assert.Equal(t, row("300 B | 30.00% | /mid", 38), lines[2])
	assert.Equal(t, row("600 B | 60.00% | /big", 38), lines[3])
}

func TestEntriesTopLevel(t *testing.T) {
	tree, _, _ := dataTree(t)
	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: tree.Top(), Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 120, Height: 4}), "\n")

	// At the very top the directory marker is suppressed, so the single
	// root shows with a blank marker despite being a directory.
	assert.Equal(t, row("1.0 kB | 100.00% |  /data", 118), lines[1])

	// The top has no path of its own; the working directory fills in.
	wd, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Contains(t, lines[0], " "+resolved+" ")
}

func TestEntriesZeroTotal(t *testing.T) {
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/empty-files", IsDir: true})
	tree.AddNode(root, traverse.EntryData{Name: "b"})
	tree.AddNode(root, traverse.EntryData{Name: "a"})

	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 30, Height: 4}), "\n")
	assert.Equal(t, row("0 B |  0.00% |  a", 28), lines[1])
	assert.Equal(t, row("0 B |  0.00% |  b", 28), lines[2])
}

func TestEntriesPercentagesSumToWhole(t *testing.T) {
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/thirds", IsDir: true})
	for _, name := range []string{"a", "b", "c"} {
		tree.AddNode(root, traverse.EntryData{Name: name, Size: 1})
	}

	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 30, Height: 5}), "\n")
	var sum float64
	for _, l := range lines[1:4] {
		fields := strings.Split(l, "|")
		require.Len(t, fields, 3)
		pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(fields[1]), "%"), 64)
		require.NoError(t, err)
		assert.InDelta(t, 33.33, pct, 0.005)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.02)
}

func TestEntriesEmptyDirectory(t *testing.T) {
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/hollow", IsDir: true})

	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 20, Height: 5}), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines[1:4] {
		assert.Equal(t, row("", 18), l)
	}
}

func TestEntriesScrollClamping(t *testing.T) {
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/many", IsDir: true})
	for i := 0; i < 10; i++ {
		tree.AddNode(root, traverse.EntryData{
			Name: "f" + string(rune('0'+i)),
			Size: uint64(i+1) * 10,
		})
	}

	panel := components.Entries{
		Tree: tree,
		State: common.DisplayState{
			Root:     root,
			Selected: traverse.NoNode,
			Offset:   9, // beyond the last full window
		},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 30, Height: 5}), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "f2")
	assert.Contains(t, lines[2], "f1")
	assert.Contains(t, lines[3], "f0")
}

func TestEntriesTruncatesRows(t *testing.T) {
	tree, root, _ := dataTree(t)
	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 12, Height: 4}), "\n")
	assert.Equal(t, "│600 B | 60│", lines[1])
}

func TestEntriesTruncatesTitle(t *testing.T) {
	tree := traverse.NewTree()
	root := tree.AddNode(tree.Top(), traverse.EntryData{Name: "/very/long/path/that/overflows", IsDir: true})

	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 16, Height: 4}), "\n")
	assert.Equal(t, "╭ /very/long/pa╮", lines[0])
}

func TestEntriesDegenerateArea(t *testing.T) {
	tree, root, _ := dataTree(t)
	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: traverse.NoNode},
	}

	assert.Empty(t, panel.Render(common.Rect{Width: 1, Height: 5}))
	assert.Empty(t, panel.Render(common.Rect{Width: 5, Height: 1}))
}

func TestEntriesSelectionHighlight(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	defer lipgloss.SetColorProfile(old)

	tree, root, big := dataTree(t)
	theme := styles.Theme{Selected: lipgloss.NewStyle().Reverse(true)}

	panel := components.Entries{
		Tree:  tree,
		State: common.DisplayState{Root: root, Selected: big},
		Theme: theme,
	}

	lines := strings.Split(panel.Render(common.Rect{Width: 40, Height: 6}), "\n")
	highlighted := 0
	for _, l := range lines {
		if strings.Contains(l, "\x1b[7m") {
			highlighted++
			assert.Contains(t, l, "big")
		}
	}
	assert.Equal(t, 1, highlighted)

	// Dropping the selection leaves every row unstyled.
	panel.State.Selected = traverse.NoNode
	out := panel.Render(common.Rect{Width: 40, Height: 6})
	assert.NotContains(t, out, "\x1b[")
}
