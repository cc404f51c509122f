package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/semgroup"
	"github.com/spf13/cobra"

	"github.com/texpect/texpect"
	"github.com/texpect/texpect/diff"
	"github.com/texpect/texpect/find"
	"github.com/texpect/texpect/run"
)

func init() {
	checkCmd.RunE = checkFiles
	checkCmd.Flags().StringVarP(&checkCmd.config, "config", "c", "",
		"TOML file with [interpreter.<lang>] tables")
	checkCmd.Flags().StringVarP(&checkCmd.diffAlg, "diff", "d", "",
		"diff algorithm: none, plain, unified, context, ndiff")
	checkCmd.Flags().BoolVar(&checkCmd.normWS, "norm-ws", false,
		"tolerate differing horizontal whitespace in template literals")
	checkCmd.Flags().StringVar(&checkCmd.rm, "rm", "",
		"characters to strip from line ends before diffing")
	checkCmd.Flags().Float64VarP(&checkCmd.timeout, "timeout", "t", 0,
		"per-example timeout in seconds")
	checkCmd.Flags().IntVar(&checkCmd.diffContext, "context", 0,
		"unchanged lines shown around diff hunks")
	checkCmd.Flags().BoolVar(&checkCmd.failFast, "fail-fast", false,
		"stop after the first failing example")
	checkCmd.Flags().IntVarP(&checkCmd.jobs, "jobs", "j", 4,
		"number of files checked concurrently")
	rootCmd.AddCommand(&checkCmd.Command)
}

var checkCmd = struct {
	cobra.Command
	config      string
	diffAlg     string
	normWS      bool
	rm          string
	timeout     float64
	diffContext int
	failFast    bool
	jobs        int
}{
	Command: cobra.Command{
		Use:   "check <file>...",
		Short: "Run the examples in Markdown files and check their output",
		Args:  cobra.MinimumNArgs(1),
	},
}

type checkState struct {
	interps map[string]Interpreter
	base    texpect.Options
	cancel  context.CancelFunc

	outMu         sync.Mutex
	total, failed atomic.Int32
}

func checkFiles(cmd *cobra.Command, files []string) error {
	interps, err := loadInterpreters(checkCmd.config)
	if err != nil {
		return err
	}
	base := texpect.DefaultOptions()
	if cmd.Flags().Changed("diff") {
		if _, err := diff.ParseAlgorithm(checkCmd.diffAlg); err != nil {
			return err
		}
		base.Diff = checkCmd.diffAlg
	}
	if cmd.Flags().Changed("norm-ws") {
		base.NormWS = checkCmd.normWS
	}
	if cmd.Flags().Changed("rm") {
		base.Rm = checkCmd.rm
	}
	if cmd.Flags().Changed("timeout") {
		base.Timeout = checkCmd.timeout
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	st := &checkState{interps: interps, base: base, cancel: cancel}
	sg := semgroup.NewGroup(ctx, int64(checkCmd.jobs))
	for _, f := range files {
		sg.Go(func() error { return st.checkFile(ctx, f) })
	}
	if err := sg.Wait(); err != nil {
		return err
	}
	if q, _ := rootCmd.Flags().GetBool("quiet"); !q {
		fmt.Printf("%d examples, %d failed\n", st.total.Load(), st.failed.Load())
	}
	if st.failed.Load() > 0 {
		exitCode = 1
	}
	return nil
}

func (st *checkState) checkFile(ctx context.Context, path string) error {
	rd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer rd.Close()
	exs, err := find.Examples(rd)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("file", path).Int("examples", len(exs)).Msg("found examples")
	for _, ex := range exs {
		if ctx.Err() != nil {
			return nil
		}
		if err := st.checkExample(ctx, path, ex); err != nil {
			return err
		}
	}
	return nil
}

func (st *checkState) checkExample(ctx context.Context, path string, ex find.Example) error {
	where := fmt.Sprintf("%s:%d", path, ex.Line)
	opts, err := texpect.ParseOptionsInto(st.base, ex.Opts)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	interp, ok := st.interps[ex.Language]
	if !ok {
		log.Warn().Str("example", where).Str("language", ex.Language).
			Msg("no interpreter configured, skipping")
		return nil
	}
	echo, err := interp.echoRe()
	if err != nil {
		return fmt.Errorf("interpreter %s: %w", ex.Language, err)
	}
	pat, err := texpect.Compile(ex.Template, texpect.CompileOptions{
		NormWS: opts.NormWS,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	for _, w := range pat.Warnings {
		log.Warn().Str("example", where).Int("offset", w.Off).Msg(w.Msg)
	}
	runner := &run.ExecRunner{
		Command:    interp.Command,
		PromptEcho: echo,
		Timeout:    time.Duration(opts.Timeout * float64(time.Second)),
		Log:        log,
	}
	st.total.Add(1)
	got, err := runner.Run(ctx, ex.Source)
	if err != nil && !errors.Is(err, run.ErrTimeout) {
		return fmt.Errorf("%s: %w", where, err)
	}
	if err == nil {
		if res := pat.Match(got); res.Matched {
			log.Debug().Str("example", where).Msg("pass")
			return nil
		} else if res.Err != nil {
			err = res.Err
		}
	}
	st.fail(where, ex, opts, pat, got, err)
	return nil
}

// fail prints one failure block. Guessed tag values are substituted
// into the expected side of the diff when capturing is on.
func (st *checkState) fail(where string, ex find.Example, opts texpect.Options,
	pat *texpect.Pattern, got string, cause error,
) {
	expected := ex.Template
	var caps []diff.Capture
	if opts.Capture {
		gss := pat.Guess(got, texpect.GuessConfig{})
		expected = gss.Expected
		for _, g := range gss.Guesses {
			caps = append(caps, diff.Capture{Name: g.Name, Value: g.Text})
		}
	}
	alg, _ := diff.ParseAlgorithm(opts.Diff)
	body, err := diff.Report(expected, got, caps, diff.Options{
		Algorithm:     alg,
		Context:       checkCmd.diffContext,
		FoldSpace:     opts.NormWS,
		StripTrailing: opts.Rm,
		Color:         useColor(),
	})
	if err != nil {
		body = err.Error() + "\n"
	}
	st.outMu.Lock()
	fmt.Printf("FAIL %s (%s)\n", where, ex.Language)
	if cause != nil {
		fmt.Printf("  %s\n", cause)
	}
	fmt.Print(body)
	st.outMu.Unlock()
	st.failed.Add(1)
	if checkCmd.failFast {
		st.cancel()
	}
}
