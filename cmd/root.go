// Package cmd implements the CLI commands for notemark using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/config"
)

// app carries what every command needs once flags have been parsed.
type app struct {
	configPath string
	debug      bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "notemark: convert editor HTML notes into Markdown and back",
		Long: `notemark turns rich HTML notes (saved editor pages, web pages, piped
fragments) into canonical Markdown, renders Markdown to HTML, JSON or PDF,
and keeps notes in a trove directory.

Usage:
  notemark convert <source>... [flags]
  notemark note save --title "Plan" plan.html`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Load configuration from `FILE` (YAML)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log debug output to the console")

	root.AddCommand(
		newConvertCmd(a),
		newRenderCmd(a),
		newNoteCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and prepares the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if a.debug {
		cfg.Logging.ConsoleLogger.Level = "debug"
	}

	log, err := cfg.Logging.Prepare()
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("Program started", zap.String("command", cmd.CommandPath()), zap.String("config", a.configPath))
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
