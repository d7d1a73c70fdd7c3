package main

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridsearch/internal/config"
	"github.com/pdrpinto/gridsearch/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "gridsearch",
		Short: "Step through BFS, DFS, Dijkstra and A* on 2D grids",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:      true,
		Version:           version,
		PersistentPreRunE: opts.load,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply when empty)")
	f.StringVar(&opts.logLevel, "log-level", "", "Override log.level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "", "Override log.format: text or json")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// load reads the config file, applies flag overrides and installs the logger.
func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
