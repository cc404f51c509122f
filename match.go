package texpect

import (
	"strings"
	"unicode/utf8"
)

// Capture is the substring a named tag bound to.
type Capture struct {
	Text       string
	Start, End int // byte offsets into the subject
}

// Result of one match attempt. Captures only holds named tags that are
// present in the pattern; unnamed tags never appear. On failure Captures
// is nil; callers that need partial information use Pattern.Guess.
type Result struct {
	Matched  bool
	Captures map[string]Capture
	// Err explains failures that are not plain content mismatches:
	// ErrDuplicateCapture and ErrTooComplex kinds.
	Err error
}

const budgetFactor = 16

// frame is one open capture decision of the matcher. Candidate spans are
// enumerated lazily, smallest first.
type frame struct {
	unit       int // capture unit index
	capStart   int
	searchFrom int
}

// Match executes the pattern against a subject text in a single
// left-to-right pass. Each capturing unit starts at its minimal span,
// possibly empty, and is extended only as far as the remainder of the
// pattern requires. The whole subject must be consumed. Work is bounded
// by a step budget; exceeding it yields a failed Result wrapping
// ErrTooComplex instead of an unbounded search.
func (p *Pattern) Match(subj string) *Result {
	res := &Result{}
	budget := p.budget
	if budget == 0 {
		budget = budgetFactor * (len(subj) + 1) * (len(p.slots) + 1)
	}
	var (
		steps = 0
		spans = make([][2]int, len(p.slots))
		trail []frame
		u     = 0
		pos   = 0
	)
	// advance enumerates the top frame's next candidate span; it returns
	// false when the frame is exhausted.
	advance := func() bool {
		f := &trail[len(trail)-1]
		cu := &p.units[f.unit]
		next := f.unit + 1
		switch {
		case next == len(p.units):
			if f.searchFrom > len(subj) {
				return false
			}
			spans[cu.slot] = [2]int{f.capStart, len(subj)}
			f.searchFrom = len(subj) + 1
			u, pos = next, len(subj)
			return true
		case p.units[next].kind == Literal:
			nu := &p.units[next]
			start, end, ok := p.litIndex(subj, f.searchFrom, nu, &steps, budget)
			if !ok {
				return false
			}
			spans[cu.slot] = [2]int{f.capStart, start}
			f.searchFrom = start + 1
			u, pos = next+1, end
			return true
		default:
			// next unit captures too: candidates grow one rune at a time
			if f.searchFrom > len(subj) {
				return false
			}
			spans[cu.slot] = [2]int{f.capStart, f.searchFrom}
			u, pos = next, f.searchFrom
			if f.searchFrom < len(subj) {
				_, sz := utf8.DecodeRuneInString(subj[f.searchFrom:])
				f.searchFrom += sz
			} else {
				f.searchFrom++
			}
			return true
		}
	}
	backtrack := func() bool {
		for len(trail) > 0 {
			if steps++; steps > budget {
				return false
			}
			if advance() {
				return true
			}
			trail = trail[:len(trail)-1]
		}
		return false
	}
	for {
		if steps++; steps > budget {
			res.Err = &BudgetError{Steps: steps}
			return res
		}
		if u == len(p.units) {
			if p.atEnd(subj, pos) {
				break
			}
			if !backtrack() {
				if steps > budget {
					res.Err = &BudgetError{Steps: steps}
				}
				return res
			}
			continue
		}
		un := &p.units[u]
		if un.kind == Literal {
			if end, ok := litMatch(subj, pos, un, p.normWS); ok {
				pos = end
				u++
				continue
			}
			if !backtrack() {
				if steps > budget {
					res.Err = &BudgetError{Steps: steps}
				}
				return res
			}
			continue
		}
		trail = append(trail, frame{unit: u, capStart: pos, searchFrom: pos})
		if !backtrack() {
			if steps > budget {
				res.Err = &BudgetError{Steps: steps}
			}
			return res
		}
	}
	return p.finish(res, subj, spans)
}

// finish checks duplicate-name consistency and builds the capture map.
func (p *Pattern) finish(res *Result, subj string, spans [][2]int) *Result {
	caps := make(map[string]Capture)
	for s, name := range p.slots {
		if name == "" {
			continue
		}
		sp := spans[s]
		text := subj[sp[0]:sp[1]]
		if first, ok := caps[name]; ok {
			if first.Text != text {
				res.Err = &DuplicateCaptureError{
					Name: name, First: first.Text, Second: text,
				}
				return res
			}
			continue
		}
		caps[name] = Capture{Text: text, Start: sp[0], End: sp[1]}
	}
	res.Matched = true
	res.Captures = caps
	return res
}

func (p *Pattern) atEnd(subj string, pos int) bool {
	if pos == len(subj) {
		return true
	}
	if !p.normWS {
		return false
	}
	for i := pos; i < len(subj); i++ {
		if !isHWS(subj[i]) {
			return false
		}
	}
	return true
}

// litIndex finds the next occurrence of a literal unit at or after from,
// charging steps against the budget.
func (p *Pattern) litIndex(subj string, from int, un *unit, steps *int, budget int) (start, end int, ok bool) {
	if !p.normWS {
		*steps++
		if *steps > budget {
			return 0, 0, false
		}
		i := strings.Index(subj[from:], un.lit)
		if i < 0 {
			return 0, 0, false
		}
		return from + i, from + i + len(un.lit), true
	}
	for at := from; at <= len(subj); at++ {
		*steps++
		if *steps > budget {
			return 0, 0, false
		}
		if e, ok := litMatch(subj, at, un, true); ok {
			return at, e, true
		}
	}
	return 0, 0, false
}

func isHWS(b byte) bool { return b == ' ' || b == '\t' }

// litMatch matches a literal unit at subj[pos:] and returns the subject
// offset after the match. With norm, horizontal whitespace runs in the
// literal match one or more whitespace characters; runs adjacent to a
// newline or to the template boundary match zero or more, and the subject
// may carry extra blanks before a line break.
func litMatch(subj string, pos int, un *unit, norm bool) (end int, ok bool) {
	lit := un.lit
	if !norm {
		if strings.HasPrefix(subj[pos:], lit) {
			return pos + len(lit), true
		}
		return 0, false
	}
	si, li := pos, 0
	for li < len(lit) {
		switch c := lit[li]; {
		case isHWS(c):
			runStart := li
			for li < len(lit) && isHWS(lit[li]) {
				li++
			}
			edge := runStart == 0 && un.headEdge ||
				li == len(lit) && un.tailEdge ||
				runStart > 0 && lit[runStart-1] == '\n' ||
				li < len(lit) && lit[li] == '\n'
			n := 0
			for si < len(subj) && isHWS(subj[si]) {
				si++
				n++
			}
			if n == 0 && !edge {
				return 0, false
			}
		case c == '\n':
			for si < len(subj) && isHWS(subj[si]) {
				si++
			}
			if si >= len(subj) || subj[si] != '\n' {
				return 0, false
			}
			si++
			li++
		default:
			if si >= len(subj) || subj[si] != c {
				return 0, false
			}
			si++
			li++
		}
	}
	return si, true
}
