package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/format"
	"github.com/dhamidi/jdl/jdl/parser"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the tokens of a JDL file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tokens, lexErrors := parser.Tokenize(src)
			log.Debugf("tokenize: %d tokens, %d lex errors", len(tokens), len(lexErrors))
			if err := format.NewTokenEncoder(cmd.OutOrStdout()).Encode(tokens, lexErrors); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			if len(lexErrors) > 0 {
				return fmt.Errorf("%d lex errors", len(lexErrors))
			}
			return nil
		},
	}
}
