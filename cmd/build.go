package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/folio/internal/ingest"
	"github.com/agentic-research/folio/internal/tree"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build [output.db]",
		Short: "Validate a declaration and store it as a SQLite nodes table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := args[0]

			decls, err := a.readDeclarations(cmd.Context())
			if err != nil {
				return err
			}
			// Only a valid tree is worth storing.
			if _, err := tree.Load(decls, tree.WithLogger(a.logger)); err != nil {
				return fmt.Errorf("%s: %w", a.cfg.Source, err)
			}

			_ = os.Remove(output) // Overwrite
			start := time.Now()
			if err := ingest.WriteSQLite(cmd.Context(), output, decls); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %s (%d nodes) in %v.\n", output, len(decls), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
