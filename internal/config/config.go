package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/site"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SERVER_ADDR.
const EnvPrefix = "PORTFOLIO"

// Config holds all configuration settings
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Meta    MetaConfig    `mapstructure:"meta" yaml:"meta"`
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	GitHub  GitHubConfig  `mapstructure:"github" yaml:"github"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr" yaml:"addr"`
	BasePath    string `mapstructure:"base_path" yaml:"base_path"` // site pages live under this prefix
	OpenBrowser bool   `mapstructure:"open_browser" yaml:"open_browser"`
}

type MetaConfig struct {
	CSV            string        `mapstructure:"csv" yaml:"csv"`
	CommitBaseURL  string        `mapstructure:"commit_base_url" yaml:"commit_base_url"`
	Timezone       string        `mapstructure:"timezone" yaml:"timezone"` // IANA name, "" = local
	ReloadInterval time.Duration `mapstructure:"reload_interval" yaml:"reload_interval"`
}

type SiteConfig struct {
	Projects   string        `mapstructure:"projects" yaml:"projects"`
	GitHubUser string        `mapstructure:"github_user" yaml:"github_user"`
	Pages      []models.Page `mapstructure:"pages" yaml:"pages"`
}

type GitHubConfig struct {
	Token     string        `mapstructure:"token" yaml:"token"`
	RateLimit int           `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
}

type CacheConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // bbolt file
}

type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"` // empty = read the CSV directly
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			BasePath: "/portfolio",
		},
		Meta: MetaConfig{
			CSV:            "meta/loc.csv",
			CommitBaseURL:  commits.DefaultCommitBaseURL,
			ReloadInterval: 5 * time.Minute,
		},
		Site: SiteConfig{
			Projects:   "lib/projects.json",
			GitHubUser: "d4zhu",
			Pages:      append([]models.Page(nil), site.DefaultPages...),
		},
		GitHub: GitHubConfig{
			RateLimit: 10, // 10 requests per second
			CacheTTL:  time.Hour,
		},
		Cache: CacheConfig{
			Path: filepath.Join(homeDir, ".portfolio", "cache.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	// PORTFOLIO_META_CSV overrides meta.csv
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("portfolio")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".portfolio"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ConfigErrorf("failed to read config: %v", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ConfigErrorf("failed to unmarshal config: %v", err)
	}

	applyEnvOverrides(cfg, NewKeyringManager())

	cfg.Cache.Path = expandPath(cfg.Cache.Path)
	cfg.Storage.SQLitePath = expandPath(cfg.Storage.SQLitePath)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.base_path", cfg.Server.BasePath)
	v.SetDefault("server.open_browser", cfg.Server.OpenBrowser)
	v.SetDefault("meta.csv", cfg.Meta.CSV)
	v.SetDefault("meta.commit_base_url", cfg.Meta.CommitBaseURL)
	v.SetDefault("meta.timezone", cfg.Meta.Timezone)
	v.SetDefault("meta.reload_interval", cfg.Meta.ReloadInterval)
	v.SetDefault("site.projects", cfg.Site.Projects)
	v.SetDefault("site.github_user", cfg.Site.GitHubUser)
	v.SetDefault("site.pages", cfg.Site.Pages)
	v.SetDefault("github.token", cfg.GitHub.Token)
	v.SetDefault("github.rate_limit", cfg.GitHub.RateLimit)
	v.SetDefault("github.cache_ttl", cfg.GitHub.CacheTTL)
	v.SetDefault("github.base_url", cfg.GitHub.BaseURL)
	v.SetDefault("cache.path", cfg.Cache.Path)
	v.SetDefault("storage.sqlite_path", cfg.Storage.SQLitePath)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.json", cfg.Log.JSON)
	v.SetDefault("log.file", cfg.Log.File)
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".portfolio", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// tokenStore is the keyring lookup used for the GitHub token.
type tokenStore interface {
	GetGitHubToken() (string, error)
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config, tokens tokenStore) {
	// Precedence: 1. Env var (highest) 2. Keychain 3. Config file (lowest)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else if tokens != nil {
		if km, ok := tokens.(*KeyringManager); !ok || km.IsAvailable() {
			if keychainToken, err := tokens.GetGitHubToken(); err == nil && keychainToken != "" {
				cfg.GitHub.Token = keychainToken
			}
		}
	}

	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Location resolves meta.timezone. Empty or "Local" is the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Meta.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Meta.Timezone)
	if err != nil {
		return nil, errors.ConfigErrorf("unknown timezone %q: %v", c.Meta.Timezone, err)
	}
	return loc, nil
}

// YAML renders the configuration with the GitHub token masked.
func (c *Config) YAML() ([]byte, error) {
	masked := *c
	masked.GitHub.Token = MaskToken(c.GitHub.Token)
	return yaml.Marshal(&masked)
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.FileSystemErrorf(err, "failed to create config directory %s", dir)
	}

	// never persist the token in plaintext
	plain := *c
	plain.GitHub.Token = ""

	data, err := yaml.Marshal(&plain)
	if err != nil {
		return errors.InternalErrorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.FileSystemErrorf(err, "failed to write config %s", path)
	}

	return nil
}
