// Package config loads and validates the site configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/nathanjclark/www/internal/errors"
)

// Config represents the full site configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Build   BuildConfig   `yaml:"build"`
	Feed    FeedConfig    `yaml:"feed"`
	Authors []Author      `yaml:"authors"`
}

// SiteConfig holds site-wide metadata used by emitted indices and feeds.
type SiteConfig struct {
	Title       string `yaml:"title"`
	BaseURL     string `yaml:"base_url"`
	Description string `yaml:"description,omitempty"`
}

// ContentConfig describes where raw content units live.
type ContentConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions,omitempty"` // defaults to [".md"]
}

// BuildConfig controls pipeline execution.
type BuildConfig struct {
	OutputDir string `yaml:"output_dir"`
	CacheDir  string `yaml:"cache_dir"`
	Workers   int    `yaml:"workers,omitempty"`
	Clean     bool   `yaml:"clean"`
}

// FeedConfig controls RSS feed emission.
type FeedConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit,omitempty"`
}

// Author is one entry of the closed author registry. Documents reference
// authors by ID; an unknown reference is a per-document content error.
type Author struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
	URL   string `yaml:"url,omitempty"`
}

// AuthorSet is the lookup form of the author registry.
type AuthorSet map[string]Author

// Authors builds the lookup set from the configured author list.
func (c *Config) AuthorSet() AuthorSet {
	set := make(AuthorSet, len(c.Authors))
	for _, a := range c.Authors {
		set[a.ID] = a
	}
	return set
}

// Load loads configuration from the specified file.
//
// A .env file in the working directory is loaded first (if present), and
// environment variables are expanded inside the YAML content before parsing.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal,
			fmt.Sprintf("read config file %s", configPath))
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse parses config bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal, "unmarshal config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Site"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "./content"
	}
	if len(c.Content.Extensions) == 0 {
		c.Content.Extensions = []string{".md"}
	}
	if c.Build.OutputDir == "" {
		c.Build.OutputDir = "./public"
	}
	if c.Build.CacheDir == "" {
		c.Build.CacheDir = "./.buildcache"
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = 4
	}
	if c.Feed.Limit <= 0 {
		c.Feed.Limit = 20
	}
}

// Validate checks whole-config invariants.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Authors))
	for _, a := range c.Authors {
		if a.ID == "" {
			return apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal, "author entry missing id")
		}
		if a.Name == "" {
			return apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal,
				fmt.Sprintf("author %q missing name", a.ID))
		}
		if _, dup := seen[a.ID]; dup {
			return apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal,
				fmt.Sprintf("author %q listed twice", a.ID))
		}
		seen[a.ID] = struct{}{}
	}
	if c.Build.Workers > 64 {
		return apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal,
			fmt.Sprintf("build.workers %d exceeds limit of 64", c.Build.Workers))
	}
	return nil
}
