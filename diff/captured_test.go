package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptured_truncation(t *testing.T) {
	caps := []Capture{{
		Name:  "protect",
		Value: "responsibility to respect the freedom of others",
	}}
	out := Captured(caps, Options{})
	require.Equal(t, "Captured:\n    protect: responsi ... f others\n", out)
	require.Equal(t, 1, strings.Count(out, ellipsis))
}

func TestCaptured_shortValueUntouched(t *testing.T) {
	out := Captured([]Capture{{Name: "n", Value: "42"}}, Options{})
	require.Equal(t, "Captured:\n    n: 42\n", out)
}

func TestCaptured_configuredWidth(t *testing.T) {
	out := Captured([]Capture{{Name: "v", Value: "abcdefghijklm"}},
		Options{MaxCaptureWidth: 11})
	// edge = (11-5)/2 = 3 preserved characters per side
	require.Equal(t, "Captured:\n    v: abc ... klm\n", out)
}

func TestCaptured_newlinesEscaped(t *testing.T) {
	out := Captured([]Capture{{Name: "v", Value: "a\nb"}}, Options{})
	require.Equal(t, `Captured:
    v: a\nb
`, out)
}

func TestCaptured_alignedColumns(t *testing.T) {
	out := Captured([]Capture{
		{Name: "a", Value: "1"},
		{Name: "long", Value: "22"},
		{Name: "c", Value: "3"},
	}, Options{})
	require.Equal(t, "Captured:\n    a: 1      long: 22  c: 3\n", out)
}

func TestCaptured_empty(t *testing.T) {
	require.Equal(t, "", Captured(nil, Options{}))
}
