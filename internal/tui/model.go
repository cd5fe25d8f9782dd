// Package tui runs the interactive disk usage browser: a background
// scan feeding an entries panel and a one-line summary footer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"duview/internal/config"
	"duview/internal/log"
	"duview/internal/traverse"
	"duview/internal/tui/common"
	"duview/internal/tui/components"
	"duview/internal/tui/messages"
	"duview/internal/tui/styles"
	"duview/internal/tui/views"
	"duview/internal/watch"
	"duview/pkg/format"
)

type phase int

const (
	scanning phase = iota
	ready
)

// maxWatchDirs caps how many directories get a change watch. Watch
// descriptors are a finite kernel resource; the shallowest directories
// are registered first because nodes are indexed parents-before-children.
const maxWatchDirs = 512

type Model struct {
	// Scan inputs, fixed at construction
	paths        []string
	opts         traverse.Options
	display      common.DisplayOptions
	theme        styles.Theme
	watchEnabled bool

	// Phase state
	phase    phase
	spin     spinner.Model
	progress *traverse.Progress
	trav     *traverse.Traversal
	err      error

	// Display state
	state  common.DisplayState
	width  int
	height int
	stale  bool

	// Where to land again after a rescan rebuilds the tree
	restoreRoot     string
	restoreSelected string

	watcher *watch.Watcher
}

func New(paths []string, cfg *config.Config) *Model {
	bf, err := format.ParseByteFormat(cfg.Display.ByteFormat)
	if err != nil {
		log.Warnf("%v, falling back to metric", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		paths:        paths,
		opts:         traverse.Options{Workers: cfg.Scan.Workers, Excludes: cfg.Scan.Excludes},
		display:      common.DisplayOptions{ByteFormat: bf},
		theme:        styles.Load(cfg.Theme),
		watchEnabled: cfg.Scan.Watch,
		phase:        scanning,
		spin:         sp,
		progress:     &traverse.Progress{},
		state:        common.DisplayState{Selected: traverse.NoNode},
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.scanCmd())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		if m.phase != scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case messages.ScanCompleteMsg:
		return m.handleScanComplete(msg)

	case messages.TreeChangedMsg:
		if m.phase == ready {
			m.stale = true
		}
		log.WithFields(log.F("path", msg.Path)).Debug("change under scanned root")
		return m, m.listenForChanges()

	case messages.ErrorMsg:
		log.Warnf("background error: %v", msg.Err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	switch {
	case m.err != nil:
		return "\n  " + errorStyle.Render(fmt.Sprintf("duview: %v", m.err)) +
			"\n\n  " + hintStyle.Render("press q to quit") + "\n"
	case m.phase == scanning:
		return m.scanView()
	case m.trav == nil:
		return ""
	default:
		total := m.trav.TotalBytes
		count := m.trav.EntriesTraversed
		w := views.MainWindow{
			Tree:    m.trav.Tree,
			State:   m.state,
			Options: m.display,
			Theme:   m.theme,
			Total:   &total,
			Entries: &count,
			Stale:   m.stale,
		}
		return w.Render(common.Rect{Width: m.width, Height: m.height})
	}
}

func (m *Model) scanView() string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Scanning %s\n\n", m.spin.View(), strings.Join(m.paths, ", "))
	b.WriteString("  " + statusStyle.Render(fmt.Sprintf("%s entries, %s so far",
		humanize.Comma(int64(m.progress.Entries())),
		m.display.ByteFormat.Format(m.progress.Bytes()))) + "\n")
	b.WriteString("\n  " + hintStyle.Render("press q to abort") + "\n")
	return b.String()
}

func (m *Model) scanCmd() tea.Cmd {
	paths, opts, prog := m.paths, m.opts, m.progress
	return func() tea.Msg {
		trav, err := traverse.Walk(paths, opts, prog)
		return messages.ScanCompleteMsg{Traversal: trav, Err: err}
	}
}

func (m *Model) handleScanComplete(msg messages.ScanCompleteMsg) (tea.Model, tea.Cmd) {
	m.phase = ready
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}

	prevSort := m.state.Sorting
	m.trav = msg.Traversal
	m.err = nil
	m.stale = false

	tree := m.trav.Tree
	m.state = common.NewDisplayState(tree)
	m.state.Sorting = prevSort
	if m.restoreRoot != "" {
		if idx := tree.FindPath(m.restoreRoot); idx != traverse.NoNode && tree.Entry(idx).IsDir {
			m.state.Root = idx
		}
	}
	if m.restoreSelected != "" {
		if idx := tree.FindPath(m.restoreSelected); idx != traverse.NoNode && tree.Parent(idx) == m.state.Root {
			m.state.Selected = idx
		}
	}
	m.restoreRoot, m.restoreSelected = "", ""
	m.clampScroll()

	if m.trav.IOErrors > 0 {
		log.Warnf("%d entries could not be read during the scan", m.trav.IOErrors)
	}
	log.WithFields(
		log.F("entries", m.trav.EntriesTraversed),
		log.F("bytes", m.trav.TotalBytes),
		log.F("elapsed", m.trav.Elapsed),
	).Debug("scan complete")

	return m, m.startWatching()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		if m.watcher != nil {
			m.watcher.Stop()
			m.watcher = nil
		}
		return m, tea.Quit
	}
	if m.phase == scanning || m.trav == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, keys.HalfPgDown):
		m.moveSelection(m.halfPage())
	case key.Matches(msg, keys.HalfPgUp):
		m.moveSelection(-m.halfPage())
	case key.Matches(msg, keys.Top):
		m.moveTo(0)
	case key.Matches(msg, keys.Bottom):
		m.moveTo(len(m.entries()) - 1)
	case key.Matches(msg, keys.Open):
		m.descend()
	case key.Matches(msg, keys.Back):
		m.ascend()
	case key.Matches(msg, keys.ToggleSort):
		m.toggleSort()
	case key.Matches(msg, keys.Rescan):
		return m, m.rescan()
	}
	return m, nil
}

func (m *Model) entries() []components.Entry {
	if m.trav == nil {
		return nil
	}
	return components.SortedEntries(m.trav.Tree, m.state.Root, m.state.Sorting)
}

func (m *Model) visibleRows() int {
	return views.VisibleRows(m.height)
}

func (m *Model) halfPage() int {
	if half := m.visibleRows() / 2; half > 1 {
		return half
	}
	return 1
}

// moveSelection shifts the selection by delta rows, bounded by the
// listing. With nothing selected yet any movement lands on the first row.
func (m *Model) moveSelection(delta int) {
	entries := m.entries()
	if len(entries) == 0 {
		m.state.Selected = traverse.NoNode
		return
	}
	pos := components.EntryPosition(entries, m.state.Selected)
	if pos < 0 {
		pos = 0
	} else {
		pos += delta
		if pos < 0 {
			pos = 0
		}
		if pos >= len(entries) {
			pos = len(entries) - 1
		}
	}
	m.state.Selected = entries[pos].Index
	m.state.EnsureVisible(pos, m.visibleRows())
}

func (m *Model) moveTo(pos int) {
	entries := m.entries()
	if len(entries) == 0 {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(entries) {
		pos = len(entries) - 1
	}
	m.state.Selected = entries[pos].Index
	m.state.EnsureVisible(pos, m.visibleRows())
}

// descend makes the selected directory the listed level and selects its
// largest entry. Files cannot be entered.
func (m *Model) descend() {
	sel := m.state.Selected
	if sel == traverse.NoNode || !m.trav.Tree.Entry(sel).IsDir {
		return
	}
	m.state.Root = sel
	m.state.Offset = 0
	children := m.entries()
	if len(children) > 0 {
		m.state.Selected = children[0].Index
	} else {
		m.state.Selected = traverse.NoNode
	}
}

// ascend moves the view to the parent level and keeps the directory we
// came out of selected.
func (m *Model) ascend() {
	tree := m.trav.Tree
	if tree.IsTop(m.state.Root) {
		return
	}
	child := m.state.Root
	m.state.Root = tree.Parent(child)
	m.state.Selected = child
	m.state.Offset = 0
	if pos := components.EntryPosition(m.entries(), child); pos >= 0 {
		m.state.EnsureVisible(pos, m.visibleRows())
	}
}

func (m *Model) toggleSort() {
	m.state.Sorting = m.state.Sorting.ToggleSize()
	if pos := components.EntryPosition(m.entries(), m.state.Selected); pos >= 0 {
		m.state.EnsureVisible(pos, m.visibleRows())
	}
}

func (m *Model) rescan() tea.Cmd {
	tree := m.trav.Tree
	m.restoreRoot = tree.Path(m.state.Root)
	m.restoreSelected = ""
	if m.state.Selected != traverse.NoNode {
		m.restoreSelected = tree.Path(m.state.Selected)
	}
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.phase = scanning
	m.stale = false
	m.progress = &traverse.Progress{}
	return tea.Batch(m.spin.Tick, m.scanCmd())
}

// clampScroll keeps the scroll offset and selection visibility sane
// after anything resized or replaced the listing.
func (m *Model) clampScroll() {
	entries := m.entries()
	visible := m.visibleRows()
	if pos := components.EntryPosition(entries, m.state.Selected); pos >= 0 {
		m.state.EnsureVisible(pos, visible)
	}
	m.state.ClampOffset(len(entries), visible)
}

// startWatching registers change watches over the scanned directories
// and returns the command that waits for the first event. Failures are
// logged and leave the interface running without staleness hints.
func (m *Model) startWatching() tea.Cmd {
	if !m.watchEnabled || m.trav == nil {
		return nil
	}
	w, err := watch.New()
	if err != nil {
		log.Warnf("change watching unavailable: %v", err)
		return nil
	}
	tree := m.trav.Tree
	added := 0
	for i := 0; i < tree.Len() && added < maxWatchDirs; i++ {
		idx := traverse.NodeIndex(i)
		if tree.IsTop(idx) || !tree.Entry(idx).IsDir {
			continue
		}
		path := tree.Path(idx)
		if err := w.AddDirectory(path); err != nil {
			log.Debugf("cannot watch %s: %v", path, err)
			continue
		}
		added++
	}
	if added == 0 {
		w.Stop()
		return nil
	}
	if err := w.Start(); err != nil {
		log.Warnf("change watching unavailable: %v", err)
		w.Stop()
		return nil
	}
	m.watcher = w
	return m.listenForChanges()
}

func (m *Model) listenForChanges() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return messages.TreeChangedMsg{Path: ev.Path}
	}
}
