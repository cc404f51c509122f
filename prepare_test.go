package texpect

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineSepScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines []string
		seps  []string
	}{
		{"nl between lines", "line1\nline2", []string{"line1", "line2"}, []string{"\n", ""}},
		{"nl last line", "line1\n", []string{"line1"}, []string{"\n"}},
		{"crnl between lines", "line1\r\nline2", []string{"line1", "line2"}, []string{"\r\n", ""}},
		{"crnl last line", "line1\r\n", []string{"line1"}, []string{"\r\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sep lineSepScanner
			scn := bufio.NewScanner(strings.NewReader(tt.input))
			scn.Split(sep.ScanLines)
			line := 0
			for scn.Scan() {
				require.Less(t, line, len(tt.lines))
				require.Equal(t, tt.lines[line], scn.Text(), "line %d", line+1)
				require.Equal(t, tt.seps[line], string(sep), "separator %d", line+1)
				line++
			}
			require.NoError(t, scn.Err())
			require.Equal(t, len(tt.lines), line, "number of lines")
		})
	}
}

func TestPrepare_Text(t *testing.T) {
	t.Run("escapes delimiters", func(t *testing.T) {
		var out strings.Builder
		err := Prepare{}.Text(&out, strings.NewReader("a < b > c\nx <<>> y\n"))
		require.NoError(t, err)
		require.Equal(t, "a << b >> c\nx <<<<>>>> y\n", out.String())
	})
	t.Run("keeps crlf", func(t *testing.T) {
		var out strings.Builder
		err := Prepare{}.Text(&out, strings.NewReader("one\r\ntwo\r\n"))
		require.NoError(t, err)
		require.Equal(t, "one\r\ntwo\r\n", out.String())
	})
	t.Run("custom delimiters", func(t *testing.T) {
		var out strings.Builder
		p := Prepare{Delims: Delims{Open: '{', Close: '}'}}
		err := p.Text(&out, strings.NewReader("f(x) { return <x>; }\n"))
		require.NoError(t, err)
		require.Equal(t, "f(x) {{ return <x>; }}\n", out.String())
	})
	t.Run("round trip is literal", func(t *testing.T) {
		const subject = "took 3ms <ok>\nid=<<42>>\n"
		var out strings.Builder
		require.NoError(t, Prepare{}.Text(&out, strings.NewReader(subject)))
		toks, err := Tokenize(out.String(), Delims{})
		require.NoError(t, err)
		var lit strings.Builder
		for _, tok := range toks {
			require.Equal(t, Literal, tok.Kind)
			lit.WriteString(tok.Text)
		}
		require.Equal(t, subject, lit.String())
	})
}
