package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/format"
	"github.com/dhamidi/jdl/jdl"
)

type astOptions struct {
	Format    string `flag:"format" validate:"oneof=json yaml"`
	StartRule string `flag:"start-rule" validate:"omitempty,startrule"`
}

func newASTCmd() *cobra.Command {
	var opts astOptions

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the semantic model of a valid JDL file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			program, err := jdl.ParseProgram(src, parserOptions(opts.StartRule)...)
			if err != nil {
				return err
			}
			log.Debugf("ast: %d entities, %d enums, %d relationships",
				len(program.Entities), len(program.Enums), len(program.Relationships))

			enc, err := format.NewEncoder(opts.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(program); err != nil {
				return fmt.Errorf("encode %s: %w", opts.Format, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().StringVar(&opts.StartRule, "start-rule", "", "grammar rule to parse instead of prog")

	return cmd
}
