// Package diff renders the comparison between expected and actual
// example output: the algorithmic difference body, the Expected/Got
// blocks and the Captured tag summary.
package diff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrUnknownAlgorithm marks an invalid algorithm name. Fatal at example
// setup time.
var ErrUnknownAlgorithm = errors.New("unknown diff algorithm")

// Algorithm selects how two outputs are compared.
type Algorithm int

const (
	// None renders no comparison body.
	None Algorithm = iota
	// Plain prints the expected block and the actual block unmodified.
	Plain
	// Unified renders minimal hunks with @@ range headers.
	Unified
	// Context renders the two-section ***/--- format.
	Context
	// Ndiff aligns line by line with ? marker lines pointing at changed
	// character columns.
	Ndiff
)

// ParseAlgorithm resolves an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "none":
		return None, nil
	case "plain":
		return Plain, nil
	case "unified":
		return Unified, nil
	case "context":
		return Context, nil
	case "ndiff":
		return Ndiff, nil
	}
	return None, fmt.Errorf("%w: '%s'", ErrUnknownAlgorithm, name)
}

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Plain:
		return "plain"
	case Unified:
		return "unified"
	case Context:
		return "context"
	case Ndiff:
		return "ndiff"
	}
	return "invalid"
}

// Options configure rendering. The zero value renders nothing (None)
// without normalization.
type Options struct {
	Algorithm Algorithm
	// Context is the number of unchanged lines shown around hunks.
	// 0 selects the customary 3.
	Context int
	// FoldSpace maps every run of horizontal whitespace to a single
	// space, on both texts, before comparing.
	FoldSpace bool
	// StripTrailing is a set of characters removed from the end of every
	// line before comparing. Stripping happens before folding.
	StripTrailing string
	// Color enables ANSI coloring of the difference body.
	Color bool
	// MaxCaptureWidth bounds a value's display width on the Captured
	// line; longer values lose their middle to an ellipsis. 0 selects 21,
	// which preserves 8 edge characters on either side.
	MaxCaptureWidth int
}

func (o Options) context() int {
	if o.Context == 0 {
		return 3
	}
	return o.Context
}

// Normalize applies StripTrailing, then FoldSpace, to every line of s.
func (o Options) Normalize(s string) string {
	if o.StripTrailing == "" && !o.FoldSpace {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, ln := range lines {
		nl := strings.HasSuffix(ln, "\n")
		if nl {
			ln = ln[:len(ln)-1]
		}
		ln = strings.TrimRight(ln, o.StripTrailing)
		if o.FoldSpace {
			ln = foldSpace(ln)
		}
		b.WriteString(ln)
		if nl {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func foldSpace(line string) string {
	var b strings.Builder
	run := false
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' || line[i] == '\t' {
			run = true
			continue
		}
		if run {
			b.WriteByte(' ')
			run = false
		}
		b.WriteByte(line[i])
	}
	if run {
		b.WriteByte(' ')
	}
	return b.String()
}

// Render normalizes both texts and produces the comparison body for the
// selected algorithm, with its section header. Two normalization-equal
// texts yield an empty differences section for every algorithm.
func Render(expected, actual string, o Options) (string, error) {
	e, a := o.Normalize(expected), o.Normalize(actual)
	switch o.Algorithm {
	case None:
		return "", nil
	case Plain:
		var b strings.Builder
		b.WriteString("Expected:\n")
		b.WriteString(ensureNL(e))
		b.WriteString("Got:\n")
		b.WriteString(ensureNL(a))
		return b.String(), nil
	case Unified:
		body, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A: difflib.SplitLines(e), B: difflib.SplitLines(a),
			FromFile: "expected", ToFile: "got",
			Context: o.context(),
		})
		if err != nil {
			return "", err
		}
		return section(body, o), nil
	case Context:
		body, err := difflib.GetContextDiffString(difflib.ContextDiff{
			A: difflib.SplitLines(e), B: difflib.SplitLines(a),
			FromFile: "expected", ToFile: "got",
			Context: o.context(),
		})
		if err != nil {
			return "", err
		}
		return section(body, o), nil
	case Ndiff:
		if e == a {
			return section("", o), nil
		}
		return section(ndiff(difflib.SplitLines(e), difflib.SplitLines(a)), o), nil
	}
	return "", fmt.Errorf("%w: '%d'", ErrUnknownAlgorithm, o.Algorithm)
}

func section(body string, o Options) string {
	if body == "" {
		return "Differences:\n"
	}
	if o.Color {
		body = colorize(body)
	}
	return "Differences:\n" + ensureNL(body)
}

func ensureNL(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}
