// Package run executes example sources through an interpreter and
// disciplines the captured output so it can be compared against a
// template: merged streams, universal newlines, prompt echo removed.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrTimeout marks an example that was killed after its deadline.
var ErrTimeout = errors.New("example timed out")

// ErrNoCommand marks an ExecRunner without an interpreter command.
var ErrNoCommand = errors.New("no interpreter command")

// Runner turns one example source into its output text.
type Runner interface {
	Run(ctx context.Context, source string) (string, error)
}

// ExecRunner pipes the source into an interpreter process and captures
// stdout and stderr interleaved, the way an interactive session shows
// them.
type ExecRunner struct {
	// Command is the interpreter argv, e.g. {"python3", "-i", "-q"}.
	Command []string
	// PromptEcho matches echoed prompt prefixes that interactive
	// interpreters write to the merged stream. Matching prefixes are
	// stripped from every output line. May be nil.
	PromptEcho *regexp.Regexp
	// Timeout kills the process; 0 runs without a deadline.
	Timeout time.Duration

	Log zerolog.Logger
}

func (r *ExecRunner) Run(ctx context.Context, source string) (string, error) {
	if len(r.Command) == 0 {
		return "", ErrNoCommand
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Stdin = strings.NewReader(source)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	start := time.Now()
	err := cmd.Run()
	r.Log.Debug().
		Str("command", r.Command[0]).
		Dur("took", time.Since(start)).
		Int("output", out.Len()).
		Msg("ran example")
	if ctx.Err() == context.DeadlineExceeded {
		return CleanOutput(out.String(), r.PromptEcho),
			fmt.Errorf("%w after %s", ErrTimeout, r.Timeout)
	}
	if err != nil {
		var xerr *exec.ExitError
		if !errors.As(err, &xerr) {
			return "", fmt.Errorf("run interpreter: %w", err)
		}
		// Nonzero exit is example output, not a runner failure. The
		// template decides whether a traceback was expected.
		r.Log.Debug().Int("exit", xerr.ExitCode()).Msg("interpreter exit")
	}
	return CleanOutput(out.String(), r.PromptEcho), nil
}

// CleanOutput normalizes raw interpreter output: line separators become
// plain \n, echoed prompt prefixes matching echo are removed and
// nonempty output always ends in a newline.
func CleanOutput(s string, echo *regexp.Regexp) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if echo != nil {
		lines := strings.Split(s, "\n")
		for i, ln := range lines {
			for {
				loc := echo.FindStringIndex(ln)
				if loc == nil || loc[0] != 0 || loc[1] == 0 {
					break
				}
				ln = ln[loc[1]:]
			}
			lines[i] = ln
		}
		s = strings.Join(lines, "\n")
	}
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
