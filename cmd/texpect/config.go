package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Interpreter describes how to run one example language.
type Interpreter struct {
	// Command is the interpreter argv; sources go to its stdin.
	Command []string `koanf:"command"`
	// Echo is a regexp matching prompt prefixes the interpreter echoes
	// back to stdout. Matching prefixes are stripped from output lines.
	Echo string `koanf:"echo"`
}

func defaultInterpreters() map[string]Interpreter {
	return map[string]Interpreter{
		"python": {
			Command: []string{"python3", "-i", "-q"},
			Echo:    `>>> |\.\.\. `,
		},
		"sh": {
			Command: []string{"sh", "-s"},
		},
		"bash": {
			Command: []string{"bash", "--norc", "-s"},
		},
	}
}

// loadInterpreters merges a TOML config file's [interpreter.<lang>]
// tables over the built-in defaults:
//
//	[interpreter.python]
//	command = ["python3", "-i", "-q"]
//	echo = '>>> |\.\.\. '
func loadInterpreters(path string) (map[string]Interpreter, error) {
	interps := defaultInterpreters()
	if path == "" {
		return interps, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	var fromFile map[string]Interpreter
	if err := k.Unmarshal("interpreter", &fromFile); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	for lang, in := range fromFile {
		if len(in.Command) == 0 {
			return nil, fmt.Errorf("config %s: interpreter %s has no command",
				path, lang)
		}
		interps[lang] = in
	}
	return interps, nil
}

func (in Interpreter) echoRe() (*regexp.Regexp, error) {
	if in.Echo == "" {
		return nil, nil
	}
	return regexp.Compile(in.Echo)
}
