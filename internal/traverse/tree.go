// Package traverse scans directories on disk and builds the in-memory
// entry tree the rest of the application navigates and renders.
package traverse

import (
	"fmt"
	"path/filepath"
)

// NodeIndex identifies one entry inside a Tree. Indices remain valid for
// the lifetime of the tree; entries are never removed.
type NodeIndex int

// NoNode marks the absence of a node, for example the parent of the top.
const NoNode NodeIndex = -1

// EntryData is the payload stored for a single filesystem entry.
type EntryData struct {
	Name  string
	Size  uint64
	IsDir bool
}

// Tree is an arena of entries linked by parent and child indices. A walk
// builds it once; afterwards it is read-only and safe to share between
// goroutines without locking.
//
// The tree always contains a synthetic top node with an empty name. The
// direct children of the top are the scanned input paths, which keeps
// multiple roots in a single tree and gives every real entry a parent.
type Tree struct {
	entries  []EntryData
	parents  []NodeIndex
	children [][]NodeIndex
}

// NewTree returns a tree holding only the synthetic top node.
func NewTree() *Tree {
	return &Tree{
		entries:  []EntryData{{Name: "", IsDir: true}},
		parents:  []NodeIndex{NoNode},
		children: [][]NodeIndex{nil},
	}
}

// Top returns the index of the synthetic top node.
func (t *Tree) Top() NodeIndex {
	if len(t.entries) == 0 {
		return NoNode
	}
	return 0
}

// Len reports the number of nodes, including the top.
func (t *Tree) Len() int { return len(t.entries) }

// AddNode appends a child under parent and returns its index. It panics
// when parent is not a node of this tree.
func (t *Tree) AddNode(parent NodeIndex, e EntryData) NodeIndex {
	t.mustValid(parent)
	idx := NodeIndex(len(t.entries))
	t.entries = append(t.entries, e)
	t.parents = append(t.parents, parent)
	t.children = append(t.children, nil)
	t.children[parent] = append(t.children[parent], idx)
	return idx
}

// Entry returns the payload of the node at idx.
func (t *Tree) Entry(idx NodeIndex) EntryData {
	t.mustValid(idx)
	return t.entries[idx]
}

// Parent returns the parent of idx, or NoNode for the top.
func (t *Tree) Parent(idx NodeIndex) NodeIndex {
	t.mustValid(idx)
	return t.parents[idx]
}

// Children returns the direct children of idx in insertion order. The
// returned slice is owned by the tree and must not be modified.
func (t *Tree) Children(idx NodeIndex) []NodeIndex {
	t.mustValid(idx)
	return t.children[idx]
}

// IsTop reports whether idx is the synthetic top node.
func (t *Tree) IsTop(idx NodeIndex) bool {
	t.mustValid(idx)
	return t.parents[idx] == NoNode
}

// Path reconstructs the filesystem path of idx by joining the names on
// the way up from the top. The top itself has an empty path.
func (t *Tree) Path(idx NodeIndex) string {
	t.mustValid(idx)
	var parts []string
	for n := idx; n != NoNode; n = t.parents[n] {
		if name := t.entries[n].Name; name != "" {
			parts = append(parts, name)
		}
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return filepath.Join(parts...)
}

// FindPath locates the node whose Path equals path, or NoNode. The
// empty path is the top. Used to land on the same directory again after
// the tree was rebuilt.
func (t *Tree) FindPath(path string) NodeIndex {
	if path == "" {
		return t.Top()
	}
	for i := 0; i < len(t.entries); i++ {
		idx := NodeIndex(i)
		if t.Path(idx) == path {
			return idx
		}
	}
	return NoNode
}

// aggregate sums file sizes bottom-up, stores the subtotal on every
// directory node and returns the grand total. Children always carry a
// higher index than their parent, so one reverse sweep suffices.
func (t *Tree) aggregate() uint64 {
	if len(t.entries) == 0 {
		return 0
	}
	totals := make([]uint64, len(t.entries))
	for i := len(t.entries) - 1; i >= 1; i-- {
		if t.entries[i].IsDir {
			t.entries[i].Size = totals[i]
		} else {
			totals[i] = t.entries[i].Size
		}
		totals[t.parents[i]] += totals[i]
	}
	t.entries[0].Size = totals[0]
	return totals[0]
}

func (t *Tree) mustValid(idx NodeIndex) {
	if idx < 0 || int(idx) >= len(t.entries) {
		panic(fmt.Sprintf("traverse: node index %d out of range (tree has %d nodes)", idx, len(t.entries)))
	}
}
