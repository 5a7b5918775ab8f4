package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the JDL grammar",
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarScanCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in EBNF grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(ebnf.Source())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file (the built-in grammar by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "jdl.ebnf"
			source := ebnf.Source()
			if len(args) == 1 {
				filename = args[0]
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				source = data
			}

			grammar, err := ebnf.Check(filename, bytes.NewReader(source), startProduction)
			if err != nil {
				for _, e := range ebnf.Errors(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d lexical productions\n",
				filename, len(ebnf.Rules(grammar)), len(ebnf.Lexical(grammar)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", ebnf.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [file]",
		Short: "Split a JDL file into tokens using the grammar's lexical productions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnf.Load()
			if err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			for _, tok := range ebnf.Scan(grammar, []byte(src)) {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
}
