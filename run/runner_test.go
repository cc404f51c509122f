package run

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCleanOutput(t *testing.T) {
	t.Run("universal newlines", func(t *testing.T) {
		require.Equal(t, "a\nb\nc\n", CleanOutput("a\r\nb\rc", nil))
	})
	t.Run("ensures trailing newline", func(t *testing.T) {
		require.Equal(t, "x\n", CleanOutput("x", nil))
		require.Equal(t, "", CleanOutput("", nil))
	})
	t.Run("strips prompt echo", func(t *testing.T) {
		echo := regexp.MustCompile(`>>> |\.\.\. `)
		got := CleanOutput(">>> 42\n... more\nplain\n", echo)
		require.Equal(t, "42\nmore\nplain\n", got)
	})
	t.Run("strips stacked echoes", func(t *testing.T) {
		echo := regexp.MustCompile(`>>> `)
		require.Equal(t, "x\n", CleanOutput(">>> >>> x\n", echo))
	})
	t.Run("echo only at line start", func(t *testing.T) {
		echo := regexp.MustCompile(`>>> `)
		require.Equal(t, "say >>> here\n", CleanOutput("say >>> here\n", echo))
	})
}

func TestExecRunner(t *testing.T) {
	t.Run("pipes source through the command", func(t *testing.T) {
		r := &ExecRunner{Command: []string{"cat"}}
		got, err := r.Run(context.Background(), "hello\nworld\n")
		require.NoError(t, err)
		require.Equal(t, "hello\nworld\n", got)
	})
	t.Run("merges stderr", func(t *testing.T) {
		r := &ExecRunner{Command: []string{"sh", "-c", "echo err >&2"}}
		got, err := r.Run(context.Background(), "")
		require.NoError(t, err)
		require.Equal(t, "err\n", got)
	})
	t.Run("nonzero exit is output, not failure", func(t *testing.T) {
		r := &ExecRunner{Command: []string{"sh", "-c", "echo boom; exit 3"}}
		got, err := r.Run(context.Background(), "")
		require.NoError(t, err)
		require.Equal(t, "boom\n", got)
	})
	t.Run("timeout", func(t *testing.T) {
		r := &ExecRunner{
			Command: []string{"sh", "-c", "sleep 5"},
			Timeout: 50 * time.Millisecond,
		}
		_, err := r.Run(context.Background(), "")
		require.ErrorIs(t, err, ErrTimeout)
	})
	t.Run("no command", func(t *testing.T) {
		r := &ExecRunner{}
		_, err := r.Run(context.Background(), "")
		require.ErrorIs(t, err, ErrNoCommand)
	})
}
