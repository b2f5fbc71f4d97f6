package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aslc/internal/diagfmt"
	"aslc/internal/driver"
)

// errDiagnostics signals a failed compilation after the diagnostics have
// already been printed; main turns it into exit status 1 silently.
var errDiagnostics = errors.New("")

// useColor resolves the --color flag against the terminal.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

// compileOptions maps persistent flags (and the manifest, if any) onto
// driver options.
func compileOptions(cmd *cobra.Command) driver.Options {
	opts := driver.Options{}
	opts.MaxDiagnostics, _ = cmd.Flags().GetInt("max-diagnostics")
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	opts.NoCache, _ = cmd.Flags().GetBool("no-cache")

	if manifest, ok, err := loadManifest("."); err == nil && ok {
		if opts.MaxDiagnostics == 0 {
			opts.MaxDiagnostics = manifest.Config.Build.MaxDiagnostics
		}
		if opts.Jobs == 0 {
			opts.Jobs = manifest.Config.Build.Jobs
		}
	}
	return opts
}

// reportDiagnostics prints the bag and returns errDiagnostics when the
// compilation failed.
func reportDiagnostics(cmd *cobra.Command, res *driver.Result) error {
	res.Bag.Sort()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := diagfmt.JSON(os.Stderr, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
			return fmt.Errorf("emit diagnostics: %w", err)
		}
	} else {
		colored := useColor(cmd)
		color.NoColor = !colored
		quiet, _ := cmd.Flags().GetBool("quiet")
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:      colored,
			ShowSource: !quiet,
			ShowNotes:  !quiet,
		})
		if !quiet {
			diagfmt.Summary(os.Stderr, res.Bag, colored)
		}
	}

	if !res.Ok() {
		return errDiagnostics
	}
	return nil
}
