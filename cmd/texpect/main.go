// Command texpect checks the examples embedded in Markdown documents:
// it runs each prompt session through its interpreter and matches the
// output against the template written below the prompts.
package main

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

var rootCmd = &cobra.Command{
	Use:           "texpect",
	Short:         "texpect runs and checks the examples in your documentation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLog)
	rootCmd.PersistentFlags().StringP("log-level", "l", "warn",
		"log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false,
		"turn off color in failure reports")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false,
		"only print failures, no summary")
}

func initLog() {
	ll, err := rootCmd.Flags().GetString("log-level")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	switch strings.ToLower(ll) {
	case "trace":
		log = log.Level(zerolog.TraceLevel)
	case "debug":
		log = log.Level(zerolog.DebugLevel)
	case "info":
		log = log.Level(zerolog.InfoLevel)
	case "warn":
		log = log.Level(zerolog.WarnLevel)
	case "err", "error":
		log = log.Level(zerolog.ErrorLevel)
	default:
		log.Warn().Msgf("unknown log level: %s", ll)
	}
}

func useColor() bool {
	if nc, _ := rootCmd.Flags().GetBool("no-color"); nc {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Exit codes follow the convention of literate test runners: 0 all
// examples pass, 1 at least one example failed, 2 setup error.
var exitCode int

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(2)
	}
	os.Exit(exitCode)
}
