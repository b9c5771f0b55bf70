// Package cmdapi holds the novaschema command tree.
package cmdapi

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tuannm99/novaschema/internal"
	"github.com/tuannm99/novaschema/internal/logger"
	"github.com/tuannm99/novaschema/internal/record"
)

const flagConfig = "config"

// env is what every subcommand runs with, built once the config is read.
type env struct {
	cfg      *internal.NovaSchemaConfig
	resolver record.Resolver
	log      zerolog.Logger
}

// NewRoot builds the command tree. Each call returns an independent tree.
func NewRoot() *cobra.Command {
	var (
		configPath string
		e          = &env{}
		root       = &cobra.Command{
			Use:          "novaschema",
			Short:        "Resolve table definitions into row codec descriptors.",
			SilenceUsage: true,
		}
	)
	root.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to a YAML config file")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		r, err := record.NewResolver(cfg.Resolver.Aliases)
		if err != nil {
			return fmt.Errorf("resolver aliases: %w", err)
		}
		e.cfg = cfg
		e.resolver = r
		e.log = logger.New(logger.Options{
			Level:  cfg.Log.Level,
			Pretty: cfg.Log.Pretty,
			Out:    cmd.ErrOrStderr(),
		}).With().Str("app", cfg.AppName).Logger()
		return nil
	}

	root.AddCommand(
		resolveCmd(e),
		inspectCmd(e),
		typesCmd(e),
		serveCmd(e),
	)
	return root
}
