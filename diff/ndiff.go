package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Intraline guides are only emitted for line pairs at least this
// similar; below it the pair is printed as an unrelated delete/insert.
const guideCutoff = 0.75

// ndiff renders a line-by-line alignment of a and b in the Differ style:
// '-'/'+'/' ' prefixed lines plus '?' guide lines that point at the
// changed character columns of a replaced line pair.
func ndiff(a, b []string) string {
	var w strings.Builder
	m := difflib.NewMatcher(a, b)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, ln := range a[op.I1:op.I2] {
				w.WriteString("  " + ln)
			}
		case 'd':
			for _, ln := range a[op.I1:op.I2] {
				w.WriteString("- " + ln)
			}
		case 'i':
			for _, ln := range b[op.J1:op.J2] {
				w.WriteString("+ " + ln)
			}
		case 'r':
			for i, j := op.I1, op.J1; i < op.I2 || j < op.J2; i, j = i+1, j+1 {
				switch {
				case i < op.I2 && j < op.J2:
					writePair(&w, a[i], b[j])
				case i < op.I2:
					w.WriteString("- " + a[i])
				default:
					w.WriteString("+ " + b[j])
				}
			}
		}
	}
	return w.String()
}

// writePair renders one replaced line pair, with guide lines when the
// two lines are similar enough for column guides to be meaningful.
func writePair(w *strings.Builder, al, bl string) {
	ac := chars(strings.TrimSuffix(al, "\n"))
	bc := chars(strings.TrimSuffix(bl, "\n"))
	m := difflib.NewMatcher(ac, bc)
	if m.Ratio() < guideCutoff {
		w.WriteString("- " + al)
		w.WriteString("+ " + bl)
		return
	}
	var atags, btags strings.Builder
	for _, op := range m.GetOpCodes() {
		an, bn := op.I2-op.I1, op.J2-op.J1
		switch op.Tag {
		case 'e':
			atags.WriteString(strings.Repeat(" ", an))
			btags.WriteString(strings.Repeat(" ", bn))
		case 'd':
			atags.WriteString(strings.Repeat("-", an))
		case 'i':
			btags.WriteString(strings.Repeat("+", bn))
		case 'r':
			atags.WriteString(strings.Repeat("^", an))
			btags.WriteString(strings.Repeat("^", bn))
		}
	}
	w.WriteString("- " + al)
	writeGuide(w, atags.String())
	w.WriteString("+ " + bl)
	writeGuide(w, btags.String())
}

func writeGuide(w *strings.Builder, tags string) {
	tags = strings.TrimRight(tags, " ")
	if tags != "" {
		w.WriteString("? " + tags + "\n")
	}
}

func chars(s string) []string {
	cs := make([]string, 0, len(s))
	for _, r := range s {
		cs = append(cs, string(r))
	}
	return cs
}
