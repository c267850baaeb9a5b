package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leofalp/webscout/core/config"
	"github.com/leofalp/webscout/providers/observability/slogobs"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:     "webscout",
		Short:   "A research assistant that searches the web and reads pages to answer questions",
		Version: version,
		Long: `webscout answers questions by driving a language model through a
search-then-read loop: it searches the web, scrapes the most promising pages
and answers from what it read, citing its sources.

The model is any OpenAI-compatible chat completions server (a local llama.cpp
server by default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(
		newAskCommand(flags),
		newScrapeCommand(flags),
		newSearchCommand(flags),
	)
	return root
}

// load reads the configuration and builds the observer. Logs go to the
// command's stderr so stdout carries only results.
func (f *globalFlags) load(cmd *cobra.Command) (config.Config, *slogobs.Observer, error) {
	cfg, err := config.Load(f.configPath, f.envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}

	observer, err := newObserver(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.SetDefault(observer.Logger())
	return cfg, observer, nil
}

func newObserver(cfg config.LogConfig, w io.Writer) (*slogobs.Observer, error) {
	level, err := slogobs.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", config.ErrInvalidConfig, err)
	}
	return slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(cfg.Format)),
		slogobs.WithLevel(level),
		slogobs.WithOutput(w),
	), nil
}
