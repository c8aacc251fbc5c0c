package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satindergrewal/maitreya/internal/config"
	"github.com/satindergrewal/maitreya/internal/host"
	"github.com/satindergrewal/maitreya/internal/logging"
)

// app carries what the persistent pre-run resolved for subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "maitreya",
		Short:         "Sine synthesis and fixed-gain quantization engine",
		Long:          `maitreya renders sine tones and runs the fixed 0.8 gain + millionth quantization pass, from the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format override (json, console)")

	root.AddCommand(
		newServeCmd(a),
		newSineCmd(a),
		newProcessCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads configuration and builds the process logger, once, before any
// engine exists.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) newHost() *host.Host {
	return host.NewWithConfig(a.cfg.Engine(), a.logger, host.WithCache(a.cfg.Cache.TTL))
}
