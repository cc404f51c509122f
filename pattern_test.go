package texpect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPattern_String(t *testing.T) {
	tests := []string{
		"plain text, no tags",
		"foo <x> bar <...> baz <>",
		"escaped <<literal>> delimiters",
		"<a><b> adjacent",
	}
	for _, tmpl := range tests {
		t.Run(tmpl, func(t *testing.T) {
			pat, err := Compile(tmpl, CompileOptions{})
			require.NoError(t, err)
			require.Equal(t, tmpl, pat.String())
		})
	}
}

func TestPattern_Tags(t *testing.T) {
	pat, err := Compile("<a> x <b> y <a> z <...> <>", CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, pat.Tags())
}

func TestCompile_adjacentTagWarning(t *testing.T) {
	t.Run("warns", func(t *testing.T) {
		pat, err := Compile("<a><b>", CompileOptions{})
		require.NoError(t, err)
		require.Len(t, pat.Warnings, 1)
		require.Equal(t, 3, pat.Warnings[0].Off)
	})
	t.Run("anchored tags do not warn", func(t *testing.T) {
		pat, err := Compile("<a> x <b>", CompileOptions{})
		require.NoError(t, err)
		require.Empty(t, pat.Warnings)
	})
	t.Run("wildcard next to named warns too", func(t *testing.T) {
		pat, err := Compile("x <...><v> y", CompileOptions{})
		require.NoError(t, err)
		require.Len(t, pat.Warnings, 1)
	})
}

func TestCompile_deterministic(t *testing.T) {
	const tmpl = "a <x>  b\n <...> c<<d"
	p1, err := Compile(tmpl, CompileOptions{NormWS: true})
	require.NoError(t, err)
	p2, err := Compile(tmpl, CompileOptions{NormWS: true})
	require.NoError(t, err)
	require.Equal(t, p1.String(), p2.String())
	require.Equal(t, p1.Tags(), p2.Tags())
	if d := cmp.Diff(p1.Warnings, p2.Warnings); d != "" {
		t.Errorf("warnings differ:\n%s", d)
	}
}

func TestCompile_syntaxError(t *testing.T) {
	_, err := Compile("broken <tag", CompileOptions{})
	require.ErrorIs(t, err, ErrTagSyntax)
}
