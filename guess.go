package texpect

import (
	"sort"
	"strings"
	"unicode/utf8"

	"git.fractalqb.de/fractalqb/icontainer/islist"
	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Confidence grades a Guess.
type Confidence int

const (
	Low Confidence = iota
	High
)

func (c Confidence) String() string {
	if c == High {
		return "high"
	}
	return "low"
}

// Guess is a best-effort capture reconstruction for a failed match. It is
// only emitted when both literal spans bounding the tag, or the document
// boundaries, were located uniquely in the subject.
type Guess struct {
	Name       string
	Text       string
	Confidence Confidence
}

// GuessConfig tunes anchor selection. These thresholds are heuristics to
// be tuned empirically; zero fields take the defaults.
type GuessConfig struct {
	// MinAnchorLen is the minimal rune length for a literal span, or a
	// located part of one, to serve as an anchor. Default 4.
	MinAnchorLen int
	// StrongAnchorLen is the located span length, in runes, from which an
	// anchor grants high confidence. Default 8.
	StrongAnchorLen int
}

func (cfg GuessConfig) or() GuessConfig {
	if cfg.MinAnchorLen == 0 {
		cfg.MinAnchorLen = 4
	}
	if cfg.StrongAnchorLen == 0 {
		cfg.StrongAnchorLen = 8
	}
	return cfg
}

// GuessResult is the outcome of one guessing pass.
type GuessResult struct {
	Guesses []Guess
	// Expected is the template text with guessed tags substituted by
	// their guessed values. Where no guess was possible the tag markup is
	// preserved verbatim.
	Expected string
}

// anchor is a literal span with its, possibly partial, location in the
// subject. A fully located anchor knows both sides; a prefix location
// pins only the start, a suffix location only the end.
type anchor struct {
	tok        int // token index in the template
	text       string
	start, end int
	startOK    bool
	endOK      bool
	// located rune lengths per side, for the confidence grade
	startSpan, endSpan int

	lsNext *anchor
}

func (a *anchor) ListNext() islist.Node { return a.lsNext }

func (a *anchor) SetListNext(n islist.Node) {
	if n == nil {
		a.lsNext = nil
	} else {
		a.lsNext = n.(*anchor)
	}
}

// Guess aligns the template's literal spans with the subject and derives
// capture guesses for named tags. It is meant to be called after Match
// reported failure, to make the rendered comparison informative without
// fabricating confident values from ambiguous anchors.
func (p *Pattern) Guess(subj string, cfg GuessConfig) *GuessResult {
	cfg = cfg.or()
	anchors := p.anchors()
	p.locateFull(anchors, subj, cfg)
	p.locatePartial(anchors, subj, cfg)
	return p.derive(anchors, subj, cfg)
}

func (p *Pattern) anchors() []*anchor {
	var as []*anchor
	for i, t := range p.toks {
		if t.Kind == Literal {
			as = append(as, &anchor{tok: i, text: t.Text})
		}
	}
	return as
}

// locateFull places anchors whose complete text occurs exactly once in the
// window between their already located neighbors. Longer spans are placed
// first: they are rarer and make stronger synchronization points, and the
// windows they fix shrink the search space for the smaller spans placed
// last.
func (p *Pattern) locateFull(anchors []*anchor, subj string, cfg GuessConfig) {
	var texts []string
	index := make(map[string]int)
	for _, a := range anchors {
		if utf8.RuneCountInString(a.text) < cfg.MinAnchorLen {
			continue
		}
		if _, ok := index[a.text]; !ok {
			index[a.text] = len(texts)
			texts = append(texts, a.text)
		}
	}
	if len(texts) == 0 {
		return
	}
	occ := make([][]int, len(texts))
	trie := ahocorasick.NewTrieBuilder().AddStrings(texts).Build()
	for _, m := range trie.MatchString(subj) {
		occ[m.Pattern()] = append(occ[m.Pattern()], int(m.Pos()))
	}
	order := make([]int, 0, len(anchors))
	for i, a := range anchors {
		if _, ok := index[a.text]; ok {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(anchors[order[i]].text) > len(anchors[order[j]].text)
	})
	for _, ai := range order {
		a := anchors[ai]
		lo, hi := window(anchors, ai, len(subj))
		at, n := -1, 0
		for _, o := range occ[index[a.text]] {
			if o >= lo && o+len(a.text) <= hi {
				at = o
				n++
			}
		}
		if n != 1 {
			continue
		}
		a.start, a.end = at, at+len(a.text)
		a.startOK, a.endOK = true, true
		a.startSpan = utf8.RuneCountInString(a.text)
		a.endSpan = a.startSpan
	}
}

// window is the subject range anchor ai may occupy, bounded by the
// nearest located anchors on each side.
func window(anchors []*anchor, ai, subjLen int) (lo, hi int) {
	lo, hi = 0, subjLen
	for j := ai - 1; j >= 0; j-- {
		a := anchors[j]
		switch {
		case a.endOK:
			return max(lo, a.end), hi
		case a.startOK:
			return max(lo, a.start), hi
		}
	}
	return lo, hi
}

// locatePartial walks the still unplaced anchors in template order and
// pins what it can: the longest prefix of the span that occurs uniquely
// in the window fixes the anchor's start, the longest unique suffix fixes
// its end. A queue of the fully located anchors supplies the right window
// bound while walking.
func (p *Pattern) locatePartial(anchors []*anchor, subj string, cfg GuessConfig) {
	var located *islist.List
	for _, a := range anchors {
		if a.startOK && a.endOK {
			if located == nil {
				located = islist.New(a)
			} else {
				located.PushBack(a)
			}
		}
	}
	lo := 0
	for _, a := range anchors {
		if a.startOK && a.endOK {
			lo = a.end
			if located != nil && located.Len() > 0 {
				located.Drop(1)
			}
			continue
		}
		hi := len(subj)
		if located != nil && located.Len() > 0 {
			hi = located.Front().(*anchor).start
		}
		if lo > hi {
			continue
		}
		win := subj[lo:hi]
		if off, n, ok := locatePrefix(win, a.text, cfg.MinAnchorLen); ok {
			a.start = lo + off
			a.startOK = true
			a.startSpan = utf8.RuneCountInString(a.text[:n])
		}
		if off, n, ok := locateSuffix(win, a.text, cfg.MinAnchorLen); ok {
			end := lo + off + n
			if !a.startOK || end >= a.start {
				a.end = end
				a.endOK = true
				a.endSpan = utf8.RuneCountInString(a.text[len(a.text)-n:])
			}
		}
		switch {
		case a.endOK:
			lo = a.end
		case a.startOK:
			lo = a.start
		}
	}
}

// locatePrefix finds the longest prefix of text, at least minLen runes,
// that occurs in win. ok only when that prefix occurs exactly once:
// ambiguous anchors never synchronize.
func locatePrefix(win, text string, minLen int) (off, n int, ok bool) {
	bounds := runeBounds(text)
	best := -1
	for lo, hi := 1, len(bounds)-1; lo <= hi; {
		mid := (lo + hi) / 2
		if strings.Contains(win, text[:bounds[mid]]) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	pre := text[:bounds[best]]
	if utf8.RuneCountInString(pre) < minLen || strings.Count(win, pre) != 1 {
		return 0, 0, false
	}
	return strings.Index(win, pre), len(pre), true
}

func locateSuffix(win, text string, minLen int) (off, n int, ok bool) {
	bounds := runeBounds(text)
	best := -1
	for lo, hi := 0, len(bounds)-2; lo <= hi; {
		mid := (lo + hi) / 2
		if strings.Contains(win, text[bounds[mid]:]) {
			best = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	suf := text[bounds[best]:]
	if utf8.RuneCountInString(suf) < minLen || strings.Count(win, suf) != 1 {
		return 0, 0, false
	}
	return strings.Index(win, suf), len(suf), true
}

// runeBounds returns the ascending byte offsets of rune boundaries in s,
// including 0 and len(s).
func runeBounds(s string) []int {
	bs := make([]int, 0, len(s)+1)
	for i := range s {
		bs = append(bs, i)
	}
	return append(bs, len(s))
}

// derive emits a guess for every named tag that sits alone between two
// located sides and renders the guess-substituted expected text.
func (p *Pattern) derive(anchors []*anchor, subj string, cfg GuessConfig) *GuessResult {
	res := &GuessResult{}
	byTok := make(map[int]*anchor, len(anchors))
	for _, a := range anchors {
		byTok[a.tok] = a
	}
	guessed := make(map[int]string)
	for ti, t := range p.toks {
		if t.Kind != Named {
			continue
		}
		leftEnd, leftStrong, ok := p.leftBound(byTok, ti, cfg)
		if !ok {
			continue
		}
		rightStart, rightStrong, ok := p.rightBound(byTok, ti, len(subj), cfg)
		if !ok || leftEnd > rightStart {
			continue
		}
		g := Guess{Name: t.Text, Text: subj[leftEnd:rightStart]}
		if leftStrong && rightStrong {
			g.Confidence = High
		}
		res.Guesses = append(res.Guesses, g)
		guessed[ti] = g.Text
	}
	var b strings.Builder
	for ti, t := range p.toks {
		if t.Kind == Literal {
			b.WriteString(t.Text)
		} else if g, ok := guessed[ti]; ok {
			b.WriteString(g)
		} else {
			b.WriteString(p.markup(t))
		}
	}
	res.Expected = b.String()
	return res
}

// leftBound is the subject offset where the capture of the tag at token
// index ti must begin. It requires the immediately preceding token to be
// a located literal span, or the document start.
func (p *Pattern) leftBound(byTok map[int]*anchor, ti int, cfg GuessConfig) (end int, strong, ok bool) {
	if ti == 0 {
		return 0, true, true
	}
	a := byTok[ti-1]
	if a == nil || !a.endOK {
		return 0, false, false
	}
	return a.end, a.endSpan >= cfg.StrongAnchorLen, true
}

func (p *Pattern) rightBound(byTok map[int]*anchor, ti, subjLen int, cfg GuessConfig) (start int, strong, ok bool) {
	if ti == len(p.toks)-1 {
		return subjLen, true, true
	}
	a := byTok[ti+1]
	if a == nil || !a.startOK {
		return 0, false, false
	}
	return a.start, a.startSpan >= cfg.StrongAnchorLen, true
}
