// Package config loads docfeed's site configuration from YAML, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gauthierbraillon/docfeed/internal/feed"
	"github.com/gauthierbraillon/docfeed/internal/logger"
	"github.com/gauthierbraillon/docfeed/internal/navigation"
)

const (
	// DefaultPath is the site file read when no --config flag is given.
	DefaultPath = "docfeed.yaml"

	configPathEnv = "DOCFEED_CONFIG"
	siteEnv       = "DOCFEED_SITE"
	contentDirEnv = "DOCFEED_CONTENT_DIR"
	logLevelEnv   = "DOCFEED_LOG_LEVEL"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full site configuration.
type Config struct {
	Site        string             `yaml:"site"`
	Title       string             `yaml:"title"`
	Description string             `yaml:"description"`
	Language    string             `yaml:"language"`
	ContentDir  string             `yaml:"contentDir"`
	Sidebar     navigation.Sidebar `yaml:"sidebar"`
	Feed        FeedConfig         `yaml:"feed"`
	Log         logger.Config      `yaml:"log"`
}

// FeedConfig controls the RSS endpoint.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Path        string `yaml:"path"`
	// ReadThrough re-reads each document's file for its date instead of
	// trusting the loaded snapshot alone.
	ReadThrough bool `yaml:"readThrough"`
	Limit       int  `yaml:"limit"`
	// Exclude lists category index ids on top of the sidebar-derived ones.
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration of the original site.
func Default() Config {
	return Config{
		Site:        "https://caishaodong.pages.dev",
		Title:       "wilson-x",
		Description: "分享技术文章和学习心得的个人博客",
		Language:    feed.DefaultLanguage,
		ContentDir:  "src/content/docs",
		Sidebar:     navigation.Default(),
		Feed: FeedConfig{
			Title:       "wilson-x 技术博客",
			Description: "分享技术文章和学习心得的个人博客",
			Path:        "/rss.xml",
			ReadThrough: true,
			Exclude:     append([]string(nil), feed.DefaultCategoryIndexes...),
		},
		Log: logger.Config{Level: "info"},
	}
}

// LoadEnv loads .env style files into the process environment.
// Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ResolvePath returns the config path from the flag value or DOCFEED_CONFIG.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(configPathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. A missing file at DefaultPath is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(siteEnv); v != "" {
		c.Site = v
	}
	if v := os.Getenv(contentDirEnv); v != "" {
		c.ContentDir = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the settings the feed depends on.
func (c Config) Validate() error {
	u, err := url.Parse(c.Site)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: site must be an absolute http(s) URL, got %q", ErrInvalid, c.Site)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalid, c.Language, err)
	}
	if !strings.HasPrefix(c.Feed.Path, "/") {
		return fmt.Errorf("%w: feed path must start with /, got %q", ErrInvalid, c.Feed.Path)
	}
	if c.Feed.Limit < 0 {
		return fmt.Errorf("%w: feed limit must not be negative", ErrInvalid)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("%w: contentDir is required", ErrInvalid)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// FeedOptions returns the channel settings for the assembler.
func (c Config) FeedOptions() feed.Options {
	title := c.Feed.Title
	if title == "" {
		title = c.Title
	}
	description := c.Feed.Description
	if description == "" {
		description = c.Description
	}
	return feed.Options{
		Title:       title,
		Description: description,
		SiteURL:     c.Site,
		Language:    c.Language,
		Limit:       c.Feed.Limit,
	}
}

// FeedURL returns the absolute URL of the feed.
func (c Config) FeedURL() string {
	return strings.TrimRight(c.Site, "/") + c.Feed.Path
}

// String renders the configuration as YAML.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(out)
}
