package texpect

import "strings"

// CompileOptions configure Compile. The zero value uses StdDelims, exact
// whitespace matching and the default step budget.
type CompileOptions struct {
	Delims Delims
	// NormWS compiles literal spans to whitespace-normalized matchers:
	// interior runs of horizontal whitespace match one or more whitespace
	// characters in the subject, runs at line edges become optional.
	// Captured text is never normalized.
	NormWS bool
	// Budget caps the matcher's work for one attempt. 0 selects a budget
	// proportional to len(subject) × (number of tags + 1).
	Budget int
}

// Warning is a non-fatal compilation diagnostic.
type Warning struct {
	Off int
	Msg string
}

type unit struct {
	kind TokenKind // Literal for literal units, the tag kind otherwise
	lit  string    // literal units: text to match
	name string    // tag units: name, "" for unnamed
	slot int       // tag units: capture slot; -1 for literal units
	// literal units: whether a whitespace run at the unit's head/tail
	// touches the template boundary (relevant with NormWS)
	headEdge, tailEdge bool
}

// Pattern is a compiled template. A Pattern is immutable and safe for
// concurrent use by multiple goroutines against different subjects.
type Pattern struct {
	units  []unit
	toks   []Token
	delims Delims
	normWS bool
	budget int
	slots  []string // slot → tag name, "" for unnamed and wildcard tags
	// Warnings are non-fatal diagnostics, e.g. adjacent tags that have no
	// literal anchor between them and therefore no determinable boundary.
	Warnings []Warning
}

// Compile tokenizes template and compiles the token sequence. Compilation
// is deterministic: equal inputs yield equivalent patterns.
func Compile(template string, opts CompileOptions) (*Pattern, error) {
	toks, err := Tokenize(template, opts.Delims)
	if err != nil {
		return nil, err
	}
	return CompileTokens(toks, opts)
}

// CompileTokens compiles an already tokenized template.
func CompileTokens(toks []Token, opts CompileOptions) (*Pattern, error) {
	p := &Pattern{
		toks:   toks,
		delims: opts.Delims.or(),
		normWS: opts.NormWS,
		budget: opts.Budget,
	}
	prevTag := false
	for i, t := range toks {
		switch t.Kind {
		case Literal:
			p.units = append(p.units, unit{
				kind:     Literal,
				lit:      t.Text,
				slot:     -1,
				headEdge: i == 0,
				tailEdge: i == len(toks)-1,
			})
			prevTag = false
		default:
			if prevTag {
				p.Warnings = append(p.Warnings, Warning{
					Off: t.Off,
					Msg: "adjacent tags have no anchor between them",
				})
			}
			u := unit{kind: t.Kind, name: t.Text, slot: len(p.slots)}
			if t.Kind == Named {
				p.slots = append(p.slots, t.Text)
			} else {
				p.slots = append(p.slots, "")
			}
			p.units = append(p.units, u)
			prevTag = true
		}
	}
	return p, nil
}

// Tags returns the named tags of the pattern in template order, each name
// once.
func (p *Pattern) Tags() []string {
	var names []string
	seen := make(map[string]bool)
	for _, n := range p.slots {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// NormWS reports whether the pattern matches literals with whitespace
// normalization.
func (p *Pattern) NormWS() bool { return p.normWS }

// String reconstructs the template source, escapes included.
func (p *Pattern) String() string {
	var b strings.Builder
	for _, t := range p.toks {
		if t.Kind == Literal {
			b.WriteString(escapeDelims(t.Text, p.delims))
		} else {
			b.WriteString(p.markup(t))
		}
	}
	return b.String()
}

func (p *Pattern) markup(t Token) string {
	var b strings.Builder
	b.WriteRune(p.delims.Open)
	b.WriteString(t.Text)
	b.WriteRune(p.delims.Close)
	return b.String()
}
