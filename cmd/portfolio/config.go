package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d4zhu/portfolio/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initForce   bool
	validateFor string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (token masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Long: `Write the effective configuration to a YAML file. The GitHub token is
never written; store it with "portfolio token set" instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "portfolio.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		abs, _ := filepath.Abs(path)
		fmt.Fprintf(color.Output, "%s wrote %s\n", color.GreenString("✓"), abs)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		result := cfg.Validate(config.ValidationContext(validateFor))
		for _, w := range result.Warnings {
			fmt.Fprintf(color.Output, "%s %s\n", color.YellowString("warning:"), w)
		}
		if result.HasErrors() {
			return fmt.Errorf("%s", result.Error())
		}
		fmt.Fprintf(color.Output, "%s configuration is valid\n", color.GreenString("✓"))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	configValidateCmd.Flags().StringVar(&validateFor, "for", string(config.ValidationContextAll), "what to validate for: serve, meta or all")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}
