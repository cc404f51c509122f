package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texpect/texpect"
	"github.com/texpect/texpect/texpecting"
)

func init() {
	prepareCmd.RunE = prepareFiles
	prepareCmd.Flags().StringVarP(&prepareCmd.suffix, "suffix", "s",
		prepareCmd.suffix,
		"file suffix for created template files")
	prepareCmd.Flags().BoolVarP(&prepareCmd.force, "force", "f",
		prepareCmd.force,
		"overwrite existing template files")
	rootCmd.AddCommand(&prepareCmd.Command)
}

var prepareCmd = struct {
	cobra.Command
	suffix string
	force  bool
}{
	Command: cobra.Command{
		Use:   "prepare [file...]",
		Short: "Turn captured output into a template, escaping tag delimiters",
	},
	suffix: texpecting.StdSuffix,
}

func prepareFiles(cmd *cobra.Command, files []string) error {
	if len(files) == 0 {
		return texpect.Prepare{}.Text(os.Stdout, os.Stdin)
	}
	for _, f := range files {
		if err := prepareFile(f); err != nil {
			return err
		}
	}
	return nil
}

func prepareFile(name string) error {
	outfile := name + prepareCmd.suffix
	if _, err := os.Stat(outfile); err == nil && !prepareCmd.force {
		return fmt.Errorf("%s already exists", outfile)
	}
	rd, err := os.Open(name)
	if err != nil {
		return err
	}
	defer rd.Close()
	wr, err := os.Create(outfile)
	if err != nil {
		return err
	}
	err = texpect.Prepare{}.Text(wr, rd)
	if cerr := wr.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		log.Info().Str("template", outfile).Msg("prepared")
	}
	return err
}
