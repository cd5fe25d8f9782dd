// Package format renders byte counts for display.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ByteFormat selects the unit system sizes are printed in.
type ByteFormat int

const (
	// Metric prints decimal units, e.g. 1.6 MB.
	Metric ByteFormat = iota
	// Binary prints IEC units, e.g. 1.5 MiB.
	Binary
	// Bytes prints the exact count with thousands separators.
	Bytes
)

// ParseByteFormat maps a config or flag value to a ByteFormat.
func ParseByteFormat(s string) (ByteFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "":
		return Metric, nil
	case "binary":
		return Binary, nil
	case "bytes":
		return Bytes, nil
	default:
		return Metric, fmt.Errorf("unknown byte format %q (want metric, binary or bytes)", s)
	}
}

func (f ByteFormat) String() string {
	switch f {
	case Binary:
		return "binary"
	case Bytes:
		return "bytes"
	default:
		return "metric"
	}
}

// Format renders n in the chosen unit system.
func (f ByteFormat) Format(n uint64) string {
	switch f {
	case Binary:
		return humanize.IBytes(n)
	case Bytes:
		return humanize.Comma(int64(n)) + " B"
	default:
		return humanize.Bytes(n)
	}
}

// Width returns a column width that fits any rendering of the format,
// for right-aligned size columns.
func (f ByteFormat) Width() int {
	switch f {
	case Binary:
		return 11
	case Bytes:
		return 16
	default:
		return 10
	}
}
