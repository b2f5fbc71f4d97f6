package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aslc/internal/diag"
	"aslc/internal/lexer"
	"aslc/internal/source"
	"aslc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.asl>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := source.NewFileSet()
		id, err := fs.Load(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")
		if maxDiag <= 0 {
			maxDiag = 100
		}
		bag := diag.NewBag(maxDiag)
		toks := lexer.Scan(fs.Get(id), diag.BagReporter{Bag: bag})

		out := cmd.OutOrStdout()
		for _, tok := range toks {
			start, _ := fs.Resolve(tok.Span)
			if tok.Kind == token.EOF {
				fmt.Fprintf(out, "%d:%d\teof\n", start.Line, start.Col)
				continue
			}
			fmt.Fprintf(out, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
		}

		if bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	},
}
