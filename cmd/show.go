package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/agentic-research/folio/internal/nav"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [key...]",
		Short: "Follow a key path from the root and print where it lands",
		Example: `  folio show -s site.yaml
  folio show -s site.yaml Projects "Vector Database"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			n := nav.New(s, nav.WithLogger(a.logger))
			r := n.SelectPath(args...)
			render(cmd.OutOrStdout(), n)
			if !r.Moved() && len(args) > 0 {
				return errors.New(describe(r))
			}
			return nil
		},
	}
}
