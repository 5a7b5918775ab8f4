package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/jdl/codebase"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infof("starting language server %s", version)
			server := codebase.NewLSPServer(version)
			return server.RunStdio()
		},
	}
}
