// Package texpecting supports the use of texpect in your Go tests.
//
// Example matches command output against testdata/TestVersion.texpect:
//
//	func TestVersion(t *testing.T) {
//		out, _ := exec.Command("tool", "--version").Output()
//		Error(t, "", string(out))
//	}
//
// Template:
//
//	tool version <version> (built <...>)
//
// On mismatch the failure message carries a unified diff against the
// template with guessed tag values substituted, plus the Captured
// summary of the guesses.
package texpecting

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/texpect/texpect"
	"github.com/texpect/texpect/diff"
)

// When this environment variable is set to a regexp and the name of the
// current test matches, calls to Error or Fatal will record the subject
// as a new template instead of comparing it. E.g.
//
//	TEXPECT_RECORD=TestRecording go test .
const RecordEnv = "TEXPECT_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see
// go help test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint, got string) error {
	return defaultConfig.Error(t, hint, got)
}

func Fatal(t *testing.T, hint, got string) {
	defaultConfig.Fatal(t, hint, got)
}

func Record(t *testing.T, hint, got string) {
	defaultConfig.Record(t, hint, got)
}

type RefRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = ".texpect"
	NoSuffix  = "\x00"
)

func (rr RefRepo) Filename(t *testing.T, hint string) string {
	suffix := rr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	RefFileName     func(t *testing.T, hint string) string
	Compile         texpect.CompileOptions
	Guess           texpect.GuessConfig
	Diff            diff.Options
	RecordOverwrite bool
}

var defaultConfig = Config{
	RefFileName: RefRepo{Dir: GoTestdataDir}.Filename,
	Diff:        diff.Options{Algorithm: diff.Unified},
}

func (cfg Config) Error(t *testing.T, hint, got string) error {
	if recordTest(t) {
		cfg.Record(t, hint, got)
		return nil
	}
	err := cfg.compare(t, hint, got)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint, got string) {
	if recordTest(t) {
		cfg.Record(t, hint, got)
	} else if err := cfg.compare(t, hint, got); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("texpecting: invalid regexp '%s' in %s, not recording: %s",
			rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg *Config) compare(t *testing.T, hint, got string) error {
	reffile := cfg.RefFileName(t, hint)
	tmpl, err := os.ReadFile(reffile)
	if os.IsNotExist(err) {
		t.Logf("to record a template file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv, t.Name())
		return fmt.Errorf("template file %s does not exist", reffile)
	} else if err != nil {
		return err
	}
	pat, err := texpect.Compile(string(tmpl), cfg.Compile)
	if err != nil {
		return fmt.Errorf("template file %s: %w", reffile, err)
	}
	res := pat.Match(got)
	if res.Matched {
		return nil
	}
	if hint == "" {
		hint = "subject"
	}
	gss := pat.Guess(got, cfg.Guess)
	caps := make([]diff.Capture, 0, len(gss.Guesses))
	for _, g := range gss.Guesses {
		caps = append(caps, diff.Capture{Name: g.Name, Value: g.Text})
	}
	body, rerr := diff.Report(gss.Expected, got, caps, cfg.Diff)
	if rerr != nil {
		return fmt.Errorf("%s mismatches %s: %w", hint, reffile, rerr)
	}
	if res.Err != nil {
		return fmt.Errorf("%s mismatches %s: %s\n%s", hint, reffile, res.Err, body)
	}
	return fmt.Errorf("%s mismatches %s:\n%s", hint, reffile, body)
}

func (cfg Config) Record(t *testing.T, hint, got string) {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("TestRecord: template file '%s' already exists", reffile)
	}
	dir := filepath.Dir(reffile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	wr, err := os.Create(reffile)
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()
	prep := texpect.Prepare{Delims: cfg.Compile.Delims}
	if err = prep.Text(wr, strings.NewReader(got)); err != nil {
		t.Error(err)
	}
	t.Errorf("texpect test-recorder wrote: %s", reffile)
}
