// Package config loads the site configuration used by the build pipeline, the docs
// navigation injector and the development server.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

const (
	// DefaultBaseURL is used when neither SITE_URL nor the config file set a base URL.
	DefaultBaseURL = "https://wayfarer-games.com"
	// EnvSiteURL names the environment variable that overrides site.base_url.
	EnvSiteURL = "SITE_URL"
)

// Config is the root configuration document.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	Serve   ServeConfig   `yaml:"serve"`
	Docs    DocsConfig    `yaml:"docs"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// SiteConfig holds values interpolated into every emitted asset.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	// PostPath is the URL prefix for post pages; the slug and a trailing slash are appended.
	PostPath string `yaml:"post_path"`
	// StaticPaths are site-relative pages always listed in the sitemap ahead of posts.
	StaticPaths []string `yaml:"static_paths"`
}

// PathsConfig locates inputs and outputs. BlogDir and PostsDir are relative to PublicDir;
// Manifest is relative to PostsDir.
type PathsConfig struct {
	PublicDir string `yaml:"public_dir"`
	BlogDir   string `yaml:"blog_dir"`
	PostsDir  string `yaml:"posts_dir"`
	Manifest  string `yaml:"manifest"`
}

// ServeConfig configures the development server.
type ServeConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// DocsConfig configures sidebar injection into the generated documentation site.
type DocsConfig struct {
	SiteDir  string `yaml:"site_dir"`
	BasePath string `yaml:"base_path"`
}

// LoggingConfig selects the log level when neither --verbose nor SITEGEN_LOG_LEVEL is set.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:     DefaultBaseURL,
			Title:       "Wayfarer Games Blog",
			Description: "Devlogs and technical breakdowns from Wayfarer Games.",
			Language:    "en-gb",
			PostPath:    "/blog/",
			StaticPaths: []string{
				"/",
				"/blog/",
				"/blog/rss.xml",
				"/100-days-blog/",
				"/timer-privacy-policy/",
			},
		},
		Paths: PathsConfig{
			PublicDir: "public",
			BlogDir:   "blog",
			PostsDir:  "blog/posts",
			Manifest:  "posts.json",
		},
		Serve: ServeConfig{
			Addr:    "localhost:5173",
			Metrics: true,
		},
		Docs: DocsConfig{
			SiteDir:  "public/bulletfury-documentation/site",
			BasePath: "/bulletfury-documentation/site",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration. An empty path yields the defaults; a non-empty path must exist.
// Values from .env files are loaded first, then the YAML (with ${VAR} expansion) is
// layered over the defaults, then SITE_URL overrides the base URL.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.ConfigError("configuration file not found").
					WithContext("path", configPath).
					Build()
			}
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				Fatal().
				WithContext("path", configPath).
				Build()
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
	}

	if v := os.Getenv(EnvSiteURL); v != "" {
		cfg.Site.BaseURL = v
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize applies canonical forms: no trailing slash on the base URL, a slash-wrapped
// post path, a lower-cased language tag.
func (c *Config) normalize() {
	c.Site.BaseURL = NormalizeBaseURL(c.Site.BaseURL)
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = DefaultBaseURL
	}

	p := strings.Trim(strings.TrimSpace(c.Site.PostPath), "/")
	if p == "" {
		c.Site.PostPath = "/"
	} else {
		c.Site.PostPath = "/" + p + "/"
	}

	c.Site.Language = strings.ToLower(strings.TrimSpace(c.Site.Language))
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.Title) == "" {
		return errors.ConfigError("site.title must not be empty").Build()
	}
	if c.Site.Language != "" {
		if _, err := language.Parse(c.Site.Language); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "site.language is not a valid BCP 47 tag").
				Fatal().
				WithContext("language", c.Site.Language).
				Build()
		}
	}
	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return errors.ConfigError("site.base_url must be an absolute http(s) URL").
			WithContext("base_url", c.Site.BaseURL).
			Build()
	}
	if c.Paths.PublicDir == "" {
		return errors.ConfigError("paths.public_dir must not be empty").Build()
	}
	if c.Paths.Manifest == "" {
		return errors.ConfigError("paths.manifest must not be empty").Build()
	}
	return nil
}

// NormalizeBaseURL trims whitespace and strips every trailing slash.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Init writes an example configuration file populated with the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}
