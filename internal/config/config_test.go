package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAC500_Config_DefaultsMatchOriginalSite(t *testing.T) {
	cfg := Default()

	if cfg.Site != "https://caishaodong.pages.dev" {
		t.Errorf("unexpected default site %q", cfg.Site)
	}
	if cfg.Language != "zh-CN" {
		t.Errorf("unexpected default language %q", cfg.Language)
	}
	if cfg.FeedURL() != "https://caishaodong.pages.dev/rss.xml" {
		t.Errorf("unexpected feed URL %q", cfg.FeedURL())
	}
	if !cfg.Feed.ReadThrough {
		t.Error("read-through dates should be on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestAC501_Config_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "site.yaml", `
site: https://example.com/
title: Example
language: en-US
contentDir: docs
sidebar:
  - label: Guides
    autogenerate:
      directory: guides
feed:
  readThrough: false
  limit: 10
  exclude: [guides/legacy]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Site != "https://example.com/" || cfg.Language != "en-US" || cfg.ContentDir != "docs" {
		t.Errorf("file values should override defaults, got %+v", cfg)
	}
	if cfg.Feed.ReadThrough {
		t.Error("readThrough: false should disable read-through")
	}
	if cfg.Feed.Path != "/rss.xml" {
		t.Errorf("unset keys should keep defaults, got path %q", cfg.Feed.Path)
	}
	if len(cfg.Sidebar) != 1 || cfg.Sidebar[0].Autogenerate.Directory != "guides" {
		t.Errorf("sidebar should be replaced, got %+v", cfg.Sidebar)
	}
	if len(cfg.Feed.Exclude) != 1 {
		t.Errorf("exclude list should be replaced, got %v", cfg.Feed.Exclude)
	}

	opts := cfg.FeedOptions()
	if opts.Title != "wilson-x 技术博客" || opts.Limit != 10 || opts.SiteURL != "https://example.com/" {
		t.Errorf("unexpected feed options %+v", opts)
	}
}

func TestAC502_Config_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "site.yaml", "site: https://example.com\n")
	t.Setenv(siteEnv, "https://env.example.com")
	t.Setenv(contentDirEnv, "content")
	t.Setenv(logLevelEnv, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Site != "https://env.example.com" || cfg.ContentDir != "content" || cfg.Log.Level != "debug" {
		t.Errorf("environment should win, got %+v", cfg)
	}
}

func TestAC503_Config_MissingDefaultFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg.Title != "wilson-x" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestAC503_Config_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("explicit missing config should fail")
	}
}

func TestAC504_Config_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"relative site", "site: /blog\n", "site"},
		{"bad language", "language: \"not a tag!\"\n", "language"},
		{"feed path", "feed:\n  path: rss.xml\n", "feed path"},
		{"negative limit", "feed:\n  limit: -1\n", "limit"},
		{"log level", "log:\n  level: loud\n", "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "site.yaml", tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestAC505_Config_LoadEnvReadsDotEnvAndIgnoresMissing(t *testing.T) {
	path := writeFile(t, ".env", "DOCFEED_TEST_VALUE=from-dotenv\n")
	t.Setenv("DOCFEED_TEST_VALUE", "")
	os.Unsetenv("DOCFEED_TEST_VALUE")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("DOCFEED_TEST_VALUE"); got != "from-dotenv" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(configPathEnv, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Errorf("expected default path, got %q", got)
	}
	t.Setenv(configPathEnv, "/etc/docfeed.yaml")
	if got := ResolvePath(""); got != "/etc/docfeed.yaml" {
		t.Errorf("expected env path, got %q", got)
	}
	if got := ResolvePath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("flag should win, got %q", got)
	}
}

func TestAC506_Config_StringRendersYAML(t *testing.T) {
	cfg := Default()

	var back Config
	if err := yaml.Unmarshal([]byte(cfg.String()), &back); err != nil {
		t.Fatalf("String should produce valid YAML: %v", err)
	}
	if back.Site != cfg.Site || back.Feed.Path != cfg.Feed.Path || back.Language != cfg.Language {
		t.Errorf("rendered config should round-trip, got %+v", back)
	}
}
