package main

import (
	"context"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/logging"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "sentiscope",
		Short: "Sentiscope - sentiment dashboard for tabular feedback",
		Long: `Sentiscope loads a CSV file or Google Sheet from a URL, labels one text
column with VADER sentiment and serves the results as tables and charts.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logging.InitLogger(cfg.Log.Level)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFileName+")")
	flags.String("addr", "", "address the dashboard listens on")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.Bool("strip-markup", false, "strip markdown and links from text before scoring")
	flags.Int("preview-rows", 0, "rows shown in the analysis preview")

	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return nil
}
