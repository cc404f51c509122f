package texpect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, tmpl string, opts CompileOptions) *Pattern {
	t.Helper()
	pat, err := Compile(tmpl, opts)
	require.NoError(t, err)
	return pat
}

func TestMatch_literalRoundTrip(t *testing.T) {
	const text = "no tags in here\njust two lines"
	res := mustCompile(t, text, CompileOptions{}).Match(text)
	require.True(t, res.Matched)
	require.NoError(t, res.Err)
	require.Empty(t, res.Captures)
}

func TestMatch_namedCapture(t *testing.T) {
	pat := mustCompile(t, "foo <x> baz", CompileOptions{})
	res := pat.Match("foo bar baz")
	require.True(t, res.Matched)
	require.Equal(t, Capture{Text: "bar", Start: 4, End: 7}, res.Captures["x"])
}

func TestMatch_emptyCapture(t *testing.T) {
	res := mustCompile(t, "a<x>b", CompileOptions{}).Match("ab")
	require.True(t, res.Matched)
	require.Equal(t, "", res.Captures["x"].Text)
}

func TestMatch_unnamedNotRetrievable(t *testing.T) {
	res := mustCompile(t, "a <> b", CompileOptions{}).Match("a QQ b")
	require.True(t, res.Matched)
	require.Empty(t, res.Captures)
}

func TestMatch_wildcardSpansLines(t *testing.T) {
	pat := mustCompile(t, "start <...> end", CompileOptions{})
	res := pat.Match("start a\nb\nc end")
	require.True(t, res.Matched)
	require.Empty(t, res.Captures)
}

func TestMatch_nonGreedy(t *testing.T) {
	// the capture stops at the first feasible anchor occurrence
	pat := mustCompile(t, "[<x>]<...>", CompileOptions{})
	res := pat.Match("[a]b]c")
	require.True(t, res.Matched)
	require.Equal(t, "a", res.Captures["x"].Text)
}

func TestMatch_backtracksOverAnchor(t *testing.T) {
	// the first "b" occurrence leaves the subject unconsumed, the
	// matcher must extend the capture to the second one
	pat := mustCompile(t, "a<x>b", CompileOptions{})
	res := pat.Match("aXbYb")
	require.True(t, res.Matched)
	require.Equal(t, "XbY", res.Captures["x"].Text)
}

func TestMatch_anchoredBothEnds(t *testing.T) {
	t.Run("leftover subject", func(t *testing.T) {
		res := mustCompile(t, "foo", CompileOptions{}).Match("foo bar")
		require.False(t, res.Matched)
		require.NoError(t, res.Err)
	})
	t.Run("leftover after capture anchor", func(t *testing.T) {
		res := mustCompile(t, "<x> end", CompileOptions{}).Match("middle end more")
		require.False(t, res.Matched)
	})
	t.Run("subject too short", func(t *testing.T) {
		res := mustCompile(t, "foobar", CompileOptions{}).Match("foo")
		require.False(t, res.Matched)
	})
}

func TestMatch_duplicateNames(t *testing.T) {
	pat := mustCompile(t, "<a> and <a>", CompileOptions{})
	t.Run("consistent", func(t *testing.T) {
		res := pat.Match("x and x")
		require.True(t, res.Matched)
		require.Equal(t, "x", res.Captures["a"].Text)
	})
	t.Run("conflict fails the match", func(t *testing.T) {
		res := pat.Match("x and y")
		require.False(t, res.Matched)
		require.ErrorIs(t, res.Err, ErrDuplicateCapture)
		var derr *DuplicateCaptureError
		require.ErrorAs(t, res.Err, &derr)
		require.Equal(t, "a", derr.Name)
		require.Equal(t, "x", derr.First)
		require.Equal(t, "y", derr.Second)
		require.Nil(t, res.Captures)
	})
}

func TestMatch_budget(t *testing.T) {
	pat := mustCompile(t, "<a>x<b>x<c>x", CompileOptions{Budget: 5})
	res := pat.Match(strings.Repeat("x", 40))
	require.False(t, res.Matched)
	require.ErrorIs(t, res.Err, ErrTooComplex)
	var berr *BudgetError
	require.ErrorAs(t, res.Err, &berr)
	require.Greater(t, berr.Steps, 5)
}

func TestMatch_defaultBudgetTerminates(t *testing.T) {
	// adversarial: many adjacent captures over a subject that cannot
	// match; must fail fast instead of hanging
	pat := mustCompile(t, strings.Repeat("<>", 8)+"!", CompileOptions{})
	res := pat.Match(strings.Repeat("y", 64))
	require.False(t, res.Matched)
}

func TestMatch_normWS(t *testing.T) {
	opts := CompileOptions{NormWS: true}
	t.Run("interior run matches one or more", func(t *testing.T) {
		pat := mustCompile(t, "a  b", opts)
		require.True(t, pat.Match("a \t  b").Matched)
		require.True(t, pat.Match("a b").Matched)
		require.False(t, pat.Match("ab").Matched)
	})
	t.Run("line edge runs are optional", func(t *testing.T) {
		pat := mustCompile(t, "  a\n  b", opts)
		require.True(t, pat.Match("a\nb").Matched)
		require.True(t, pat.Match("   a\n b").Matched)
	})
	t.Run("blanks before line break are tolerated", func(t *testing.T) {
		pat := mustCompile(t, "a\nb", opts)
		require.True(t, pat.Match("a   \nb").Matched)
	})
	t.Run("trailing blanks on last line are tolerated", func(t *testing.T) {
		pat := mustCompile(t, "foo", opts)
		require.True(t, pat.Match("foo  \t").Matched)
		require.False(t, pat.Match("foo  x").Matched)
	})
	t.Run("exact mode stays strict", func(t *testing.T) {
		require.False(t, mustCompile(t, "a  b", CompileOptions{}).Match("a b").Matched)
		require.False(t, mustCompile(t, "foo", CompileOptions{}).Match("foo ").Matched)
	})
}

func TestMatch_captureNeverNormalized(t *testing.T) {
	pat := mustCompile(t, "x <v>", CompileOptions{NormWS: true})
	res := pat.Match("x   a  b")
	require.True(t, res.Matched)
	require.Equal(t, "a  b", res.Captures["v"].Text)
}

func TestMatch_concurrentUse(t *testing.T) {
	pat := mustCompile(t, "n=<n>;", CompileOptions{})
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				res := pat.Match("n=42;")
				if !res.Matched || res.Captures["n"].Text != "42" {
					t.Error("concurrent match failed")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
