package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aslc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.asl>",
	Short: "Run the semantic passes and print diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := compileOptions(cmd)
		// Checking must always look at the actual source.
		opts.NoCache = true
		res, err := driver.CompileFile(args[0], opts)
		if err != nil {
			return err
		}
		if err := reportDiagnostics(cmd, res); err != nil {
			return err
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		}
		return nil
	},
}
