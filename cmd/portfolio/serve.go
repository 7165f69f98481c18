package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/d4zhu/portfolio/internal/api"
	"github.com/d4zhu/portfolio/internal/cache"
	"github.com/d4zhu/portfolio/internal/config"
	"github.com/d4zhu/portfolio/internal/github"
	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/site"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long: `Serve the portfolio pages, the meta page and its interaction API.

The commit dataset is loaded on first use and reloaded after
meta.reload_interval. Color scheme preferences and GitHub profiles are
kept in the bbolt cache at cache.path.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the site in a browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("open") {
		cfg.Server.OpenBrowser = serveOpen
	}

	result := cfg.Validate(config.ValidationContextServe)
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if result.HasErrors() {
		return fmt.Errorf("%s", result.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := recordSource(nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	opts := api.Options{
		Data:       newProvider(src),
		Pages:      cfg.Site.Pages,
		GitHubUser: cfg.Site.GitHubUser,
		BasePath:   cfg.Server.BasePath,
		Logger:     logger,
	}
	if cfg.Site.Projects != "" {
		opts.Projects = ingestion.NewSource(cfg.Site.Projects)
	}

	gh := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit, logger)
	if cfg.GitHub.BaseURL != "" {
		if gh, err = gh.WithBaseURL(cfg.GitHub.BaseURL); err != nil {
			return err
		}
	}

	store, err := cache.Open(cfg.Cache.Path, logger)
	if err != nil {
		// preferences then last for the life of the process only
		logger.WithError(err).Warn("cache unavailable, using in-memory preferences")
		opts.Themes = site.NewMemoryThemeStore()
	} else {
		defer store.Close()
		opts.Themes = store
		gh.WithCache(store, cfg.GitHub.CacheTTL)
	}
	opts.Profiles = gh

	srv := api.NewServer(opts)

	if cfg.Server.OpenBrowser {
		go func() {
			time.Sleep(300 * time.Millisecond)
			url := siteURL(cfg.Server.Addr, cfg.Server.BasePath)
			if err := browser.OpenURL(url); err != nil {
				logger.WithError(err).Warn("failed to open browser")
			}
		}()
	}

	return srv.Start(ctx, cfg.Server.Addr)
}

// siteURL turns a listen address into a browsable URL.
func siteURL(addr, base string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + base + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + base + "/"
}
