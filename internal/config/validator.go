package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationContext specifies what configuration is required
type ValidationContext string

const (
	// ValidationContextServe - serve needs an address and the site settings
	ValidationContextServe ValidationContext = "serve"
	// ValidationContextMeta - stats, render and select need the commit data
	ValidationContextMeta ValidationContext = "meta"
	// ValidationContextAll - validate all configuration
	ValidationContextAll ValidationContext = "all"
)

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn))
		}
	}

	return sb.String()
}

// Validate validates configuration for the given context
func (c *Config) Validate(ctx ValidationContext) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch ctx {
	case ValidationContextServe:
		c.validateServer(result)
		c.validateMeta(result)
		c.validateSite(result)
		c.validateGitHub(result)
	case ValidationContextMeta:
		c.validateMeta(result)
	case ValidationContextAll:
		c.validateServer(result)
		c.validateMeta(result)
		c.validateSite(result)
		c.validateGitHub(result)
		c.validateLog(result)
	}

	return result
}

func (c *Config) validateServer(result *ValidationResult) {
	if c.Server.Addr == "" {
		result.AddError("server.addr is required")
	}
	if c.Server.BasePath != "" && (!strings.HasPrefix(c.Server.BasePath, "/") || strings.HasSuffix(c.Server.BasePath, "/")) {
		result.AddError("server.base_path must start with / and not end with /, got %q", c.Server.BasePath)
	}
}

func (c *Config) validateMeta(result *ValidationResult) {
	if c.Meta.CSV == "" && c.Storage.SQLitePath == "" {
		result.AddError("meta.csv or storage.sqlite_path is required")
	}
	if _, err := c.Location(); err != nil {
		result.AddError("meta.timezone: %v", err)
	}
	if c.Meta.CommitBaseURL != "" && !isHTTPURL(c.Meta.CommitBaseURL) {
		result.AddError("meta.commit_base_url must be an http(s) URL, got %q", c.Meta.CommitBaseURL)
	}
	if c.Meta.ReloadInterval < 0 {
		result.AddError("meta.reload_interval cannot be negative")
	}
}

func (c *Config) validateSite(result *ValidationResult) {
	if c.Site.Projects == "" {
		result.AddWarning("site.projects is empty, project sections will render empty")
	}
	if c.Site.GitHubUser == "" {
		result.AddWarning("site.github_user is empty, the profile card is disabled")
	}
	for i, p := range c.Site.Pages {
		if p.URL == "" || p.Title == "" {
			result.AddError("site.pages[%d] needs both url and title", i)
		}
	}
}

func (c *Config) validateGitHub(result *ValidationResult) {
	if c.GitHub.RateLimit < 0 {
		result.AddError("github.rate_limit cannot be negative")
	}
	if c.GitHub.CacheTTL < 0 {
		result.AddError("github.cache_ttl cannot be negative")
	}
	if c.GitHub.BaseURL != "" && !isHTTPURL(c.GitHub.BaseURL) {
		result.AddError("github.base_url must be an http(s) URL, got %q", c.GitHub.BaseURL)
	}
	if c.GitHub.Token == "" {
		result.AddWarning("no GitHub token configured, unauthenticated requests are limited to 60 per hour")
	}
}

func (c *Config) validateLog(result *ValidationResult) {
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		result.AddWarning("unknown log.level %q, using info", c.Log.Level)
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
