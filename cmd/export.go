package cmd

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/folio/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Write the tree out as directories and content files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			dir := args[0]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", dir, err)
			}
			n, err := export.Write(s, osfs.New(dir), export.Options{
				Ext:    a.cfg.Export.Ext,
				Logger: a.logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", n, dir)
			return nil
		},
	}
	cmd.Flags().String("ext", ".html", "File extension for leaf content")
	_ = a.v.BindPFlag("export.ext", cmd.Flags().Lookup("ext")) // static flag name
	return cmd
}
