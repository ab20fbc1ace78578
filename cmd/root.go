package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agentic-research/folio/api"
	"github.com/agentic-research/folio/internal/config"
	"github.com/agentic-research/folio/internal/ingest"
	"github.com/agentic-research/folio/internal/logging"
	"github.com/agentic-research/folio/internal/tree"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

// NewRootCmd builds the folio command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Folio: load, check and navigate a portfolio content tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync() // stderr sync fails on some terminals
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Path to folio.yaml")
	pf.StringP("source", "s", "", "Path to the node declaration")
	pf.StringP("format", "f", "auto", "Declaration format: auto, json, yaml, hcl, sqlite, catalog")
	pf.String("select", "", "JSONPath selecting the declaration inside a JSON document")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "console", "Log encoding: console, json")

	for key, flag := range map[string]string{
		"source":     "source",
		"format":     "format",
		"select":     "select",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag)) // flag names are static
	}

	root.AddCommand(
		newCheckCmd(a),
		newShowCmd(a),
		newBrowseCmd(a),
		newExportCmd(a),
		newBuildCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errNoSource = errors.New("no declaration: pass --source or set source in folio.yaml")

// readDeclarations decodes the configured source file.
func (a *app) readDeclarations(ctx context.Context) ([]api.Declaration, error) {
	if a.cfg.Source == "" {
		return nil, errNoSource
	}
	abs, err := filepath.Abs(a.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", a.cfg.Source, err)
	}
	fsys := osfs.New(filepath.Dir(abs))
	return ingest.Load(ctx, fsys, filepath.Base(abs), ingest.Options{
		Format:   ingest.Format(a.cfg.Format),
		Selector: a.cfg.Selector,
		Logger:   a.logger,
	})
}

// loadStore reads and validates the configured source. A failure here is
// fatal to the command: no partially valid tree is ever rendered.
func (a *app) loadStore(ctx context.Context) (*tree.Store, error) {
	decls, err := a.readDeclarations(ctx)
	if err != nil {
		a.logger.Error("read declarations", zap.String("source", a.cfg.Source), zap.Error(err))
		return nil, err
	}
	s, err := tree.Load(decls, tree.WithLogger(a.logger))
	if err != nil {
		a.logger.Error("invalid tree", zap.String("source", a.cfg.Source), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", a.cfg.Source, err)
	}
	return s, nil
}
