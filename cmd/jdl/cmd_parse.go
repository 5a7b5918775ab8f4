package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/format"
	"github.com/dhamidi/jdl/jdl/parser"
)

type parseOptions struct {
	Format    string `flag:"format" validate:"oneof=tree json"`
	StartRule string `flag:"start-rule" validate:"omitempty,startrule"`
	Positions bool   `flag:"positions"`
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a JDL file and print its concrete syntax tree",
		Long: "Parse a JDL file and print its concrete syntax tree. The tree is printed\n" +
			"even when the input has errors; the errors go to stderr.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			result, err := parser.Parse(src, parserOptions(opts.StartRule)...)
			var verr *parser.ValidationError
			if err != nil && !errors.As(err, &verr) {
				return err
			}

			switch opts.Format {
			case "json":
				err = format.NewCSTJSONEncoder(cmd.OutOrStdout()).Encode(result.CST)
			default:
				err = format.NewTreeEncoder(cmd.OutOrStdout(), opts.Positions).Encode(result.CST)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return reportErrors(cmd, result, verr)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().StringVar(&opts.StartRule, "start-rule", "", "grammar rule to parse instead of prog")
	cmd.Flags().BoolVar(&opts.Positions, "positions", false, "include source positions in tree output")

	return cmd
}

// reportErrors prints every problem of result to stderr and returns an error
// summarizing them.
func reportErrors(cmd *cobra.Command, result *parser.Result, verr *parser.ValidationError) error {
	stderr := cmd.ErrOrStderr()
	for _, e := range result.LexErrors {
		fmt.Fprintln(stderr, e.Error())
	}
	for _, e := range result.ParseErrors {
		fmt.Fprintln(stderr, e.Error())
	}
	if verr != nil {
		fmt.Fprintln(stderr, verr.Error())
	}

	n := len(result.LexErrors) + len(result.ParseErrors)
	switch {
	case n > 0:
		return fmt.Errorf("%d syntax errors", n)
	case verr != nil:
		return verr
	}
	return nil
}
