package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Server().Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&c.addr, "addr", "", "listen address (default from AUTOCERTIFY_ADDR)")
	return cmd
}
