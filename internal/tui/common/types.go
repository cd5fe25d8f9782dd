// Package common holds the small shared types the interactive widgets
// exchange: the display state, sort order and region geometry.
package common

import (
	"duview/internal/traverse"
	"duview/pkg/format"
)

// SortMode orders the entries of one directory level.
type SortMode int

const (
	// SizeDescending lists the largest entries first. The default.
	SizeDescending SortMode = iota
	// SizeAscending lists the smallest entries first.
	SizeAscending
)

// ToggleSize flips between the two size orders. Applying it twice
// always returns the starting mode.
func (m SortMode) ToggleSize() SortMode {
	if m == SizeDescending {
		return SizeAscending
	}
	return SizeDescending
}

func (m SortMode) String() string {
	if m == SizeAscending {
		return "size ascending"
	}
	return "size descending"
}

// DisplayState tracks what the interactive view is looking at: the
// directory whose children fill the entries panel, which child is
// selected, the sort order and the scroll position.
type DisplayState struct {
	Root     traverse.NodeIndex
	Selected traverse.NodeIndex // NoNode when nothing is selected
	Sorting  SortMode
	Offset   int // first visible row of the entries panel
}

// NewDisplayState starts at the top of the tree with no selection.
func NewDisplayState(tree *traverse.Tree) DisplayState {
	return DisplayState{
		Root:     tree.Top(),
		Selected: traverse.NoNode,
	}
}

// EnsureVisible moves Offset the minimal amount needed to bring row pos
// into a window of visible rows.
func (s *DisplayState) EnsureVisible(pos, visible int) {
	if visible <= 0 {
		s.Offset = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos < s.Offset {
		s.Offset = pos
	}
	if pos >= s.Offset+visible {
		s.Offset = pos - visible + 1
	}
}

// ClampOffset pulls Offset back into range after the row count or the
// window size changed underneath it.
func (s *DisplayState) ClampOffset(total, visible int) {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

// Rect is the size of a rectangular screen region in terminal cells.
type Rect struct {
	Width  int
	Height int
}

// DisplayOptions carries rendering settings shared by all widgets.
type DisplayOptions struct {
	ByteFormat format.ByteFormat
}
