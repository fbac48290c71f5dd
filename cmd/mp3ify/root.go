package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mp3ify/config"
)

// commandContext carries lazily initialized configuration and logging shared
// by all subcommands.
type commandContext struct {
	configFlag   *string
	logFileFlag  *string
	logLevelFlag *int

	cmd      *cobra.Command
	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logFileFlag string
	var logLevelFlag int

	ctx := &commandContext{
		configFlag:   &configFlag,
		logFileFlag:  &logFileFlag,
		logLevelFlag: &logLevelFlag,
	}

	rootCmd := &cobra.Command{
		Use:           "mp3ify",
		Short:         "Convert a FLAC/M4A music library to MP3",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.cmd = cmd
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctx.logClose != nil {
				ctx.logClose.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Log file destination (default stderr)")
	rootCmd.PersistentFlags().IntVar(&logLevelFlag, "log-level", 0, "Log level (slog levels: -4 debug, 0 info, 4 warn, 8 error)")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newArtistsCommand(ctx))

	return rootCmd
}

// ensureConfig loads the config file once, or falls back to defaults when no
// file was given.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	if *c.configFlag == "" {
		c.cfg = config.Default()
		return c.cfg, nil
	}

	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", *c.configFlag, err)
	}
	c.cfg = cfg
	return cfg, nil
}

// ensureLogger builds the run's logger once: JSON output to the configured
// log file, or stderr when none is set. Flags override config values.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if c.cmd != nil && c.cmd.Flags().Changed("log-level") {
		level = *c.logLevelFlag
	}

	logFile := cfg.LogFile
	if *c.logFileFlag != "" {
		logFile = *c.logFileFlag
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		c.logClose = f
		w = f
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(level)}))
	slog.SetDefault(logger)
	c.logger = logger
	return logger, nil
}

// resolveRoot picks the library root from the flag or the config file.
func (c *commandContext) resolveRoot(rootFlag string) (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Library.Root == "" {
		return "", fmt.Errorf("library root not set: pass --root or set library.root in the config file")
	}
	return cfg.Library.Root, nil
}
