package main

import (
	"github.com/spf13/cobra"

	"aslc/internal/driver"
)

var tacCmd = &cobra.Command{
	Use:   "tac <file.asl>",
	Short: "Compile and print the three-address code to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := driver.CompileFile(args[0], compileOptions(cmd))
		if err != nil {
			return err
		}
		if err := reportDiagnostics(cmd, res); err != nil {
			return err
		}
		return res.Tac.Dump(cmd.OutOrStdout())
	},
}
