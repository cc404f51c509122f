package diff

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Capture is one tag→value pair for the Captured summary.
type Capture struct {
	Name, Value string
}

const (
	ellipsis  = " ... "
	capIndent = "    "
	capWrapAt = 76
)

// Captured renders the tag summary: a `Captured:` header followed by
// `name: value` pairs in run-aligned columns. Values wider than the
// configured display width lose their middle to an ellipsis, preserving
// a fixed number of leading and trailing characters.
func Captured(caps []Capture, o Options) string {
	if len(caps) == 0 {
		return ""
	}
	maxw := o.MaxCaptureWidth
	if maxw == 0 {
		maxw = 21
	}
	pairs := make([]string, len(caps))
	colw := 0
	for i, c := range caps {
		v := strings.ReplaceAll(c.Value, "\n", `\n`)
		pairs[i] = c.Name + ": " + shorten(v, maxw)
		if w := runewidth.StringWidth(pairs[i]); w > colw {
			colw = w
		}
	}
	var b strings.Builder
	b.WriteString("Captured:\n")
	line := ""
	for i, p := range pairs {
		if i < len(pairs)-1 {
			p = runewidth.FillRight(p, colw+2)
		}
		if line != "" && runewidth.StringWidth(line+p) > capWrapAt {
			b.WriteString(capIndent + strings.TrimRight(line, " ") + "\n")
			line = ""
		}
		line += p
	}
	if line != "" {
		b.WriteString(capIndent + strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

// shorten cuts the middle of v so that its display width does not exceed
// maxw, keeping equal leading and trailing parts around one ellipsis.
func shorten(v string, maxw int) string {
	if runewidth.StringWidth(v) <= maxw {
		return v
	}
	edge := (maxw - len(ellipsis)) / 2
	return fitLeft(v, edge) + ellipsis + fitRight(v, edge)
}

// fitLeft is the longest prefix of v with display width at most w.
func fitLeft(v string, w int) string {
	used := 0
	for i, r := range v {
		rw := runewidth.RuneWidth(r)
		if used+rw > w {
			return v[:i]
		}
		used += rw
	}
	return v
}

// fitRight is the longest suffix of v with display width at most w.
func fitRight(v string, w int) string {
	rs := []rune(v)
	used := 0
	for i := len(rs) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(rs[i])
		if used+rw > w {
			return string(rs[i+1:])
		}
		used += rw
	}
	return v
}
