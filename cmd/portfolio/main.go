package main

import (
	"fmt"
	"os"

	"github.com/d4zhu/portfolio/internal/config"
	"github.com/d4zhu/portfolio/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile  string
	verbose  bool
	logger   *logrus.Logger
	cfg      *config.Config
	closeLog = func() error { return nil }
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site server and commit history tools",
	Long: `portfolio serves the personal portfolio site and its meta page, a
scatterplot and file breakdown of the site's own commit history.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var loadErr error
		cfg, loadErr = config.Load(cfgFile)
		if loadErr != nil {
			cfg = config.Default()
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}

		var err error
		logger, closeLog, err = logging.New(logging.Config{
			Level:      level,
			OutputFile: cfg.Log.File,
			JSONFormat: cfg.Log.JSON,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if loadErr != nil {
			logger.WithError(loadErr).Warn("Failed to load config, using defaults")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./portfolio.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`portfolio {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenCmd)
}
