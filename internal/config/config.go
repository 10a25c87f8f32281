// Package config loads the optional YAML configuration that overrides the
// built-in blog settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/daisuki-koshian/blogpatch"
	"github.com/daisuki-koshian/blogpatch/internal/fileutil"
	"github.com/daisuki-koshian/blogpatch/internal/snippets"
	"github.com/daisuki-koshian/blogpatch/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrUnknownJob      = errors.New("unknown job")
	ErrUnknownStyle    = errors.New("unknown highlight style")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxURLLength     = 2048 // Browser limit
	MaxHandleLength  = 50   // X handle is 15, leave room
	MaxSnippetLength = 2000 // Analytics tag
	MaxStyleLength   = 50
)

// appName is the directory under the user config dir.
const appName = "blogpatch"

// Jobs are the job names accepted in the jobs list.
var Jobs = []string{"features", "mobile", "analytics"}

// Config holds all configuration for a patch run.
type Config struct {
	Root      string          `yaml:"root"`
	Site      SiteConfig      `yaml:"site"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Assets    AssetsConfig    `yaml:"assets"`
	Jobs      []string        `yaml:"jobs"` // Empty = all jobs
	Highlight HighlightConfig `yaml:"highlight"`
}

// SiteConfig defines values baked into links and share buttons.
type SiteConfig struct {
	BaseURL  string `yaml:"baseURL"`  // Absolute, trailing slash
	ShareVia string `yaml:"shareVia"` // X account, no @
}

// AnalyticsConfig defines the analytics tag.
type AnalyticsConfig struct {
	Snippet string `yaml:"snippet"`
}

// CatalogConfig defines where article metadata comes from.
type CatalogConfig struct {
	Path string `yaml:"path"` // Empty = embedded table
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// HighlightConfig defines code highlighting.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: github)
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Root: blogpatch.DefaultRoot,
		Site: SiteConfig{
			BaseURL:  blogpatch.DefaultBaseURL,
			ShareVia: blogpatch.DefaultShareVia,
		},
		Analytics: AnalyticsConfig{Snippet: blogpatch.DefaultAnalytics},
		Highlight: HighlightConfig{Style: snippets.DefaultHighlightStyle},
	}
}

// SiteSettings returns the site values the patcher bakes into snippets.
func (c *Config) SiteSettings() blogpatch.Site {
	return blogpatch.Site{
		BaseURL:   c.Site.BaseURL,
		ShareVia:  c.Site.ShareVia,
		Analytics: c.Analytics.Snippet,
	}
}

// Validate checks field lengths and values. Called automatically by
// LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"root", c.Root, MaxPathLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.shareVia", c.Site.ShareVia, MaxHandleLength},
		{"analytics.snippet", c.Analytics.Snippet, MaxSnippetLength},
		{"catalog.path", c.Catalog.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Root == "" {
		return fmt.Errorf("%w: root: required", ErrInvalidValue)
	}

	if err := c.SiteSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	for i, j := range c.Jobs {
		if !slices.Contains(Jobs, j) {
			return fmt.Errorf("%w: jobs[%d]: %q (must be one of %s)", ErrUnknownJob, i, j, strings.Join(Jobs, ", "))
		}
	}

	if c.Highlight.Style != "" && !snippets.HighlightStyleExists(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style: %q", ErrUnknownStyle, c.Highlight.Style)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/blogpatch/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			user := filepath.Join(dir, appName, name+ext)
			if fileutil.FileExists(user) {
				return user, nil
			}
			tried = append(tried, user)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
