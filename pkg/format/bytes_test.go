package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duview/pkg/format"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		f    format.ByteFormat
		n    uint64
		want string
	}{
		{"metric zero", format.Metric, 0, "0 B"},
		{"metric small", format.Metric, 999, "999 B"},
		{"metric kilobytes", format.Metric, 1024, "1.0 kB"},
		{"metric megabytes", format.Metric, 1572864, "1.6 MB"},
		{"binary kibibytes", format.Binary, 1024, "1.0 KiB"},
		{"binary mebibytes", format.Binary, 1572864, "1.5 MiB"},
		{"bytes", format.Bytes, 1572864, "1,572,864 B"},
		{"bytes zero", format.Bytes, 0, "0 B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Format(tc.n))
		})
	}
}

func TestParseByteFormat(t *testing.T) {
	for in, want := range map[string]format.ByteFormat{
		"metric": format.Metric,
		"Binary": format.Binary,
		"BYTES":  format.Bytes,
		"":       format.Metric,
		" bytes": format.Bytes,
	} {
		got, err := format.ParseByteFormat(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := format.ParseByteFormat("decimalish")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []format.ByteFormat{format.Metric, format.Binary, format.Bytes} {
		parsed, err := format.ParseByteFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
}

func TestWidthCoversOutput(t *testing.T) {
	// The widest plausible rendering must fit the advertised column width.
	for _, f := range []format.ByteFormat{format.Metric, format.Binary} {
		out := f.Format(1023*1024*1024*1024 + 987654321)
		assert.LessOrEqual(t, len(out), f.Width(), "format %s output %q", f, out)
	}
}
