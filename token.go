package texpect

import (
	"strings"
	"unicode/utf8"
)

// Delims is the tag delimiter pair of a template. A doubled delimiter in
// the template stands for one literal delimiter character.
type Delims struct {
	Open, Close rune
}

// StdDelims is the default delimiter pair.
var StdDelims = Delims{'<', '>'}

func (d Delims) or() Delims {
	if d.Open == 0 {
		d.Open = StdDelims.Open
	}
	if d.Close == 0 {
		d.Close = StdDelims.Close
	}
	return d
}

// WildcardName is the reserved tag spelling that matches any span without
// binding it to a name.
const WildcardName = "..."

// TokenKind tells what a template span is.
type TokenKind int

const (
	// Literal is verbatim template text.
	Literal TokenKind = iota
	// Wildcard is the <...> tag: matches any span, captures nothing.
	Wildcard
	// Named is a <name> tag: captures a span and binds it to name.
	Named
	// Unnamed is the <> tag: captures a span without binding a name.
	Unnamed
)

func (k TokenKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Wildcard:
		return "wildcard"
	case Named:
		return "named"
	case Unnamed:
		return "unnamed"
	}
	return "invalid"
}

// Token is one span of a template: verbatim text or a capture tag.
type Token struct {
	Kind TokenKind
	Text string // literal text with escapes resolved, or the tag name
	Off  int    // byte offset of the span in the template source
}

// IsTag reports whether the token is any kind of tag.
func (t Token) IsTag() bool { return t.Kind != Literal }

// Tokenize splits a template into an ordered sequence of literal and tag
// spans. It is a pure function: no state is kept between calls.
func Tokenize(template string, d Delims) ([]Token, error) {
	d = d.or()
	var (
		toks  []Token
		lit   strings.Builder
		litAt int
	)
	put := func(r rune, at int) {
		if lit.Len() == 0 {
			litAt = at
		}
		lit.WriteRune(r)
	}
	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, Token{Kind: Literal, Text: lit.String(), Off: litAt})
			lit.Reset()
		}
	}
	i := 0
	for i < len(template) {
		r, sz := utf8.DecodeRuneInString(template[i:])
		switch r {
		case d.Open:
			if n, nsz := utf8.DecodeRuneInString(template[i+sz:]); n == d.Open {
				put(d.Open, i)
				i += sz + nsz
				continue
			}
			name, end, ok := scanTag(template, i+sz, d.Close)
			if !ok {
				return nil, syntaxErrorf(i, "unterminated tag")
			}
			flush()
			tok, err := classifyTag(name, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = end
		case d.Close:
			if n, nsz := utf8.DecodeRuneInString(template[i+sz:]); n == d.Close {
				put(d.Close, i)
				i += sz + nsz
				continue
			}
			// a lone close delimiter is unambiguous
			put(d.Close, i)
			i += sz
		default:
			put(r, i)
			i += sz
		}
	}
	flush()
	return toks, nil
}

func scanTag(s string, from int, close rune) (name string, end int, ok bool) {
	j := from
	for j < len(s) {
		c, csz := utf8.DecodeRuneInString(s[j:])
		if c == close {
			return s[from:j], j + csz, true
		}
		j += csz
	}
	return "", 0, false
}

func classifyTag(name string, off int) (Token, error) {
	switch {
	case name == "":
		return Token{Kind: Unnamed, Off: off}, nil
	case name == WildcardName:
		return Token{Kind: Wildcard, Text: name, Off: off}, nil
	case strings.Count(name, ".") == len(name):
		return Token{}, syntaxErrorf(off, "tag name '%s' is reserved", name)
	}
	for _, r := range name {
		if !identRune(r) {
			return Token{}, syntaxErrorf(off,
				"illegal rune '%c' in tag name '%s'", r, name)
		}
	}
	return Token{Kind: Named, Text: name, Off: off}, nil
}

func identRune(r rune) bool {
	return r == '_' ||
		'a' <= r && r <= 'z' ||
		'A' <= r && r <= 'Z' ||
		'0' <= r && r <= '9'
}
