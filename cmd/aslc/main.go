package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aslc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "aslc",
	Short:         "ASL language compiler",
	Long:          `aslc compiles ASL source files into three-address code`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tacCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("json", false, "emit diagnostics as JSON")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel code generation jobs (0 = all cores)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the compiled TAC cache")

	if err := rootCmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			rootCmd.PrintErrln("aslc:", msg)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
