package diff

import (
	"strings"

	"github.com/fatih/color"
)

var (
	delLine   = color.New(color.FgRed)
	addLine   = color.New(color.FgGreen)
	guideLine = color.New(color.FgCyan)
	hunkLine  = color.New(color.FgMagenta)
)

// colorize repaints a rendered diff body line by line. The marker
// conventions are shared by all line based algorithms: '-' and '!' for
// expected-side lines, '+' for actual-side lines, '?' for ndiff guides
// and '@'/'*' for hunk headers.
func colorize(body string) string {
	var b strings.Builder
	for _, ln := range strings.SplitAfter(body, "\n") {
		if ln == "" {
			continue
		}
		switch {
		case strings.HasPrefix(ln, "@@") || strings.HasPrefix(ln, "***") ||
			strings.HasPrefix(ln, "---") || strings.HasPrefix(ln, "+++"):
			b.WriteString(hunkLine.Sprint(strings.TrimSuffix(ln, "\n")))
			b.WriteByte('\n')
		case strings.HasPrefix(ln, "-") || strings.HasPrefix(ln, "!"):
			b.WriteString(delLine.Sprint(strings.TrimSuffix(ln, "\n")))
			b.WriteByte('\n')
		case strings.HasPrefix(ln, "+"):
			b.WriteString(addLine.Sprint(strings.TrimSuffix(ln, "\n")))
			b.WriteByte('\n')
		case strings.HasPrefix(ln, "?"):
			b.WriteString(guideLine.Sprint(strings.TrimSuffix(ln, "\n")))
			b.WriteByte('\n')
		default:
			b.WriteString(ln)
		}
	}
	return b.String()
}
