// Package cli implements the anchormap command-line interface.
//
// Commands load YAML map descriptions, arrange them with the anchor layout
// engine, and emit SVG, JSON or DOT artifacts. The serve command exposes the
// same pipeline over HTTP.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jverhoeven/anchormap/pkg/buildinfo"
)

// Execute runs the anchormap CLI.
//
// The root command wires the subcommands, resolves the optional TOML config
// file, and attaches a logger to the context at the level selected by
// --verbose.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:          "anchormap",
		Short:        "Anchormap arranges diagrams from directional anchor maps",
		Long:         `Anchormap reads YAML map descriptions that connect named shapes with compass directions (n, s, e, w and the diagonals) and computes absolute positions for every shape, group and connector.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			loaded, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			cfg = loaded
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/anchormap.toml)")

	root.AddCommand(newRenderCmd(&cfg))
	root.AddCommand(newValidateCmd(&cfg))
	root.AddCommand(newGraphCmd())
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newCacheCmd(&cfg))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
