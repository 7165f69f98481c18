package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/d4zhu/portfolio/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the GitHub token in the OS keychain",
	Long: `The GitHub token raises the API rate limit for the profile section.
It is looked up in GITHUB_TOKEN, then the OS keychain, then github.token.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a GitHub token in the keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := config.NewKeyringManager().WithLogger(logger)
		if !km.IsAvailable() {
			return fmt.Errorf("OS keychain is not available; set GITHUB_TOKEN instead")
		}

		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("GitHub token: ")
		}
		token, err := readToken()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token == "" {
			return fmt.Errorf("empty token")
		}

		if err := km.SetGitHubToken(token); err != nil {
			return err
		}
		fmt.Fprintf(color.Output, "%s saved %s to keychain\n", color.GreenString("✓"), config.MaskToken(token))
		return nil
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the GitHub token from the keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.NewKeyringManager().WithLogger(logger).DeleteGitHubToken(); err != nil {
			return err
		}
		fmt.Fprintf(color.Output, "%s token removed\n", color.GreenString("✓"))
		return nil
	},
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the GitHub token comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := config.NewKeyringManager().WithLogger(logger)
		source := km.TokenSource(cfg, os.Getenv("GITHUB_TOKEN"))

		fmt.Fprintf(color.Output, "keychain: %s\n", availability(km.IsAvailable()))
		if source == "none" {
			fmt.Fprintf(color.Output, "token:    %s (unauthenticated, 60 requests/hour)\n", color.YellowString("none"))
			return nil
		}
		fmt.Fprintf(color.Output, "token:    %s from %s\n", config.MaskToken(cfg.GitHub.Token), color.CyanString(source))
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
	tokenCmd.AddCommand(tokenStatusCmd)
}

// readToken reads without echo from a terminal, or a line from piped stdin.
func readToken() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		bytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func availability(ok bool) string {
	if ok {
		return color.GreenString("available")
	}
	return color.RedString("unavailable")
}
