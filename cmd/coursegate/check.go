package main

import (
	"encoding/json"

	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/guard"
	"github.com/cccteam/coursegate/policy"
	"github.com/go-playground/errors/v5"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		policyFile string
		path       string
		roleName   string
		metadata   string
		signedOut  bool
		notLoaded  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a navigation against the route policy",
		Long: `Evaluate a navigation against the route policy and print the outcome as JSON.

Examples:
  coursegate check --path /add-course --role student
  coursegate check --path /add-course --metadata '"admin"'
  coursegate check --path /admin --signed-out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := policy.Load(policyFile)
			if err != nil {
				return errors.Wrap(err, "policy.Load()")
			}

			sess := access.Session{
				IsLoaded:   !notLoaded,
				IsSignedIn: !signedOut,
			}
			if sess.IsSignedIn {
				sess.SubjectID = "coursegate-check"
				sess.RoleMetadata = roleName
				if metadata != "" {
					if err := json.Unmarshal([]byte(metadata), &sess.RoleMetadata); err != nil {
						return errors.Wrap(err, "json.Unmarshal()")
					}
				}
			}

			g := guard.New(nil, nil, p)
			res, err := g.Outcome(cmd.Context(), sess, path)
			if err != nil {
				return errors.Wrap(err, "guard.Guard.Outcome()")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return errors.Wrap(err, "json.Encoder.Encode()")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&policyFile, "policy", "routes.yaml", "route policy file")
	cmd.Flags().StringVar(&path, "path", "", "requested path")
	cmd.Flags().StringVar(&roleName, "role", "student", "role metadata of the signed in principal")
	cmd.Flags().StringVar(&metadata, "metadata", "", "raw JSON role metadata, overrides --role")
	cmd.Flags().BoolVar(&signedOut, "signed-out", false, "evaluate a signed out session")
	cmd.Flags().BoolVar(&notLoaded, "not-loaded", false, "evaluate before the identity provider is loaded")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
