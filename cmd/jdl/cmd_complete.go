package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/jdl/parser"
)

type completeOptions struct {
	StartRule string `flag:"start-rule" validate:"omitempty,startrule"`
	Expand    bool   `flag:"expand"`
}

func newCompleteCmd() *cobra.Command {
	var opts completeOptions

	cmd := &cobra.Command{
		Use:   "complete [file]",
		Short: "List the token kinds that may follow a partial JDL document",
		Long: "List the token kinds that may follow a partial JDL document, one per\n" +
			"line with the keyword spelling where there is one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			kinds, err := parser.Suggest(src, parserOptions(opts.StartRule)...)
			if err != nil {
				return err
			}
			log.Debugf("complete: %d suggestions", len(kinds))

			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				if !opts.Expand || !kind.IsCategory() {
					printKind(cmd, kind)
					continue
				}
				for _, concrete := range parser.ExpandCategory(kind) {
					fmt.Fprintf(out, "%s\t%s\t%s\n", kind, concrete, concrete.Literal())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.StartRule, "start-rule", "", "grammar rule the document starts with")
	cmd.Flags().BoolVar(&opts.Expand, "expand", false, "list the keywords of each category")

	return cmd
}

func printKind(cmd *cobra.Command, kind parser.TokenKind) {
	if lit := kind.Literal(); lit != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kind, lit)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), kind)
}
