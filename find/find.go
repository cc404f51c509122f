// Package find extracts runnable examples from Markdown documents. An
// example lives in a fenced code block whose info string names the
// interpreter language; prompt lines form the source and the lines
// after them form the expected output template.
package find

import (
	"bufio"
	"io"
	"strings"
)

// Prompt prefixes inside a fenced block. PS1 opens an example, PS2
// continues its source.
const (
	PS1 = ">>> "
	PS2 = "... "
)

// Example is one extracted prompt session: the source to feed the
// interpreter and the template its output must match.
type Example struct {
	// Language is the first token of the fence info string.
	Language string
	// Source is the newline-terminated interpreter input.
	Source string
	// Template is the expected output, tag markup included.
	Template string
	// Opts are the remaining info string tokens, e.g. "norm-ws".
	Opts []string
	// Line is the 1-based line number of the example's first prompt.
	Line int
}

// Examples scans a Markdown document for fenced code blocks and returns
// the prompt sessions found in them, in document order. Blocks without
// an info string and block text outside a prompt session are skipped.
func Examples(r io.Reader) ([]Example, error) {
	var (
		exs      []Example
		cur      *Example
		lang     string
		opts     []string
		inFence  bool
		lineNo   int
		tmpl     strings.Builder
		srcLines []string
	)
	finish := func() {
		if cur == nil {
			return
		}
		cur.Source = strings.Join(srcLines, "\n") + "\n"
		cur.Template = tmpl.String()
		exs = append(exs, *cur)
		cur = nil
		srcLines = srcLines[:0]
		tmpl.Reset()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasPrefix(line, "```") {
			if inFence {
				finish()
				inFence = false
				continue
			}
			info := strings.Fields(line[3:])
			if len(info) == 0 {
				continue
			}
			lang, opts = info[0], nil
			if len(info) > 1 {
				opts = info[1:]
			}
			inFence = true
			continue
		}
		if !inFence {
			continue
		}
		switch {
		case strings.HasPrefix(line, PS1), line == strings.TrimRight(PS1, " "):
			finish()
			cur = &Example{Language: lang, Opts: opts, Line: lineNo}
			srcLines = append(srcLines, promptRest(line, PS1))
		case cur != nil && tmpl.Len() == 0 &&
			(strings.HasPrefix(line, PS2) || line == strings.TrimRight(PS2, " ")):
			srcLines = append(srcLines, promptRest(line, PS2))
		case cur != nil:
			tmpl.WriteString(line)
			tmpl.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return exs, err
	}
	finish()
	return exs, nil
}

func promptRest(line, ps string) string {
	if len(line) < len(ps) {
		return ""
	}
	return line[len(ps):]
}
