package components

import (
	"sort"

	"duview/internal/traverse"
	"duview/internal/tui/common"
)

// Entry is one row of a sorted directory listing: the node handle plus
// a copy of its payload so render code does not look everything up twice.
type Entry struct {
	Index traverse.NodeIndex
	Data  traverse.EntryData
}

// SortedEntries returns the children of root in display order. The
// primary key is size in the direction the mode asks for; ties fall
// back to name ascending and finally to the node index. That makes the
// order total, so one tree and one mode always yield one listing no
// matter how the tree was assembled.
func SortedEntries(tree *traverse.Tree, root traverse.NodeIndex, mode common.SortMode) []Entry {
	children := tree.Children(root)
	out := make([]Entry, 0, len(children))
	for _, c := range children {
		out = append(out, Entry{Index: c, Data: tree.Entry(c)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Data.Size != b.Data.Size {
			if mode == common.SizeAscending {
				return a.Data.Size < b.Data.Size
			}
			return a.Data.Size > b.Data.Size
		}
		if a.Data.Name != b.Data.Name {
			return a.Data.Name < b.Data.Name
		}
		return a.Index < b.Index
	})
	return out
}

// EntryPosition finds the row of node within entries, or -1 when the
// node is not part of the listing.
func EntryPosition(entries []Entry, node traverse.NodeIndex) int {
	for i, e := range entries {
		if e.Index == node {
			return i
		}
	}
	return -1
}
