// Package messages defines the messages the interactive model receives
// from its background work.
package messages

import "duview/internal/traverse"

// ScanCompleteMsg delivers a finished traversal, or the error that
// stopped it before it produced one.
type ScanCompleteMsg struct {
	Traversal *traverse.Traversal
	Err       error
}

// TreeChangedMsg reports a filesystem change under a scanned root,
// meaning the displayed numbers no longer match the disk.
type TreeChangedMsg struct {
	Path string
}

// ErrorMsg surfaces a background failure that is worth noting but not
// worth tearing the interface down for.
type ErrorMsg struct {
	Err error
}
