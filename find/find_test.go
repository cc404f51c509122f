package find

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const doc = "# A tour\n" +
	"\n" +
	"Some prose around the first example.\n" +
	"\n" +
	"```python norm-ws\n" +
	">>> print(6 * 7)\n" +
	"42\n" +
	">>> for i in range(2):\n" +
	"...     print(i)\n" +
	"0\n" +
	"1\n" +
	"```\n" +
	"\n" +
	"```\n" +
	"no info string, not an example\n" +
	"```\n" +
	"\n" +
	"```sh\n" +
	">>> echo hi\n" +
	"hi\n" +
	"```\n"

func TestExamples(t *testing.T) {
	exs, err := Examples(strings.NewReader(doc))
	require.NoError(t, err)
	want := []Example{
		{
			Language: "python",
			Source:   "print(6 * 7)\n",
			Template: "42\n",
			Opts:     []string{"norm-ws"},
			Line:     6,
		},
		{
			Language: "python",
			Source:   "for i in range(2):\n    print(i)\n",
			Template: "0\n1\n",
			Opts:     []string{"norm-ws"},
			Line:     8,
		},
		{
			Language: "sh",
			Source:   "echo hi\n",
			Template: "hi\n",
			Line:     19,
		},
	}
	if d := cmp.Diff(want, exs); d != "" {
		t.Errorf("examples (-want +got):\n%s", d)
	}
}

func TestExamples_emptyTemplate(t *testing.T) {
	exs, err := Examples(strings.NewReader("```sh\n>>> true\n```\n"))
	require.NoError(t, err)
	require.Len(t, exs, 1)
	require.Equal(t, "true\n", exs[0].Source)
	require.Equal(t, "", exs[0].Template)
}

func TestExamples_promptOutsideFenceIgnored(t *testing.T) {
	exs, err := Examples(strings.NewReader(">>> not an example\n"))
	require.NoError(t, err)
	require.Empty(t, exs)
}

func TestExamples_barePrompt(t *testing.T) {
	exs, err := Examples(strings.NewReader("```py\n>>>\nout\n```\n"))
	require.NoError(t, err)
	require.Len(t, exs, 1)
	require.Equal(t, "\n", exs[0].Source)
	require.Equal(t, "out\n", exs[0].Template)
}
