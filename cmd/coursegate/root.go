package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coursegate",
		Short: "Session and access gateway for the course application",
		Long: `coursegate signs users in through an OpenID Connect provider, keeps their sessions
in PostgreSQL or Cloud Spanner, and guards every view of the course application by role.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(), newCheckCmd())

	return cmd
}
