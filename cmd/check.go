package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a declaration and list its diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			diags := s.Diagnostics()
			fmt.Fprintf(out, "ok: %d nodes, root %q, %d leaves, %d diagnostics\n",
				s.Len(), s.Root().ID(), len(s.Leaves()), len(diags))
			for _, d := range diags {
				fmt.Fprintf(out, "  %s\n", d)
			}
			if strict && len(diags) > 0 {
				return fmt.Errorf("%d diagnostics in strict mode", len(diags))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any diagnostic is reported")
	return cmd
}
