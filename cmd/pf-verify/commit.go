package main

import (
	"github.com/spf13/cobra"

	"github.com/MJE43/stake-pf-verify/internal/engine"
)

func newCommitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commit [server-seed]",
		Short: "Print the commitment (hex SHA-256) of a server seed",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := a.server
			if len(args) == 1 {
				seed = args[0]
			}
			if seed == "" {
				return usageErrorf("commit needs a server seed argument or --server")
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			return p.Commitment(engine.ComputeCommitment(seed))
		},
	}
}
