package texpect

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/texpect/texpect/diff"
)

// Options are the per-example settings recognized by the engine. They
// arrive from the example provider as a flat set of `key` or `key=value`
// tokens, e.g. from a fence info string.
type Options struct {
	// NormWS enables whitespace folding for template literals.
	NormWS bool `mapstructure:"norm-ws"`
	// Rm is the set of characters stripped from line ends before diffing.
	Rm string `mapstructure:"rm"`
	// Diff selects the comparison algorithm:
	// none, plain, unified, context or ndiff.
	Diff string `mapstructure:"diff"`
	// Timeout in seconds for running the example. Not consumed by the
	// matching core, passed through to the runner.
	Timeout float64 `mapstructure:"timeout"`
	// Capture enables guessing of tag values on match failure.
	Capture bool `mapstructure:"capture"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{Diff: "unified", Capture: true, Timeout: 2}
}

var knownOptions = map[string]bool{
	"norm-ws": true, "rm": true, "diff": true, "timeout": true, "capture": true,
}

// ParseOptions decodes a flat option token set over the defaults. An
// unknown option or an unknown diff algorithm name is a configuration
// error, fatal at example setup time.
func ParseOptions(tokens []string) (Options, error) {
	return ParseOptionsInto(DefaultOptions(), tokens)
}

// ParseOptionsInto decodes tokens over base.
func ParseOptionsInto(base Options, tokens []string) (Options, error) {
	o := base
	m := make(map[string]any)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		k, v, has := strings.Cut(tok, "=")
		if !has {
			v = "true"
		}
		if !knownOptions[k] {
			return o, fmt.Errorf("unknown option '%s'", k)
		}
		m[k] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &o,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return o, err
	}
	if err = dec.Decode(m); err != nil {
		return o, err
	}
	if _, err = diff.ParseAlgorithm(o.Diff); err != nil {
		return o, err
	}
	return o, nil
}
