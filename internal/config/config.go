package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"

	"lechatnoir.dev/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SITE__ROOT
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	ContentDir string           `yaml:"content_dir" koanf:"content_dir"`
	Components ComponentsConfig `yaml:"components" koanf:"components"`
	Site       SiteConfig       `yaml:"site" koanf:"site"`
	Awards     AwardsConfig     `yaml:"awards" koanf:"awards"`
	Nav        []models.NavLink `yaml:"nav" koanf:"nav"`
	Build      BuildConfig      `yaml:"build" koanf:"build"`
	Log        LogConfig        `yaml:"log" koanf:"log"`
	Dev        bool             `yaml:"dev" koanf:"dev"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr           string   `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	AllowAll       bool     `yaml:"allow_all" koanf:"allow_all"`
}

// ComponentsConfig says where the shared chrome fragments come from.
// When URL is set the fragments are fetched over HTTP, otherwise from Dir.
type ComponentsConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
	URL string `yaml:"url" koanf:"url"`
}

// SiteConfig holds branding and the site root
type SiteConfig struct {
	Title     string `yaml:"title" koanf:"title"`
	Tagline   string `yaml:"tagline" koanf:"tagline"`
	Logo      string `yaml:"logo" koanf:"logo"`
	Copyright string `yaml:"copyright" koanf:"copyright"`
	// Root replaces per-page depth detection when set, e.g. "/" or
	// "https://cdn.example.com/site/".
	Root string `yaml:"root" koanf:"root"`
}

// AwardsConfig locates awards-data.json
type AwardsConfig struct {
	Path string `yaml:"path" koanf:"path"`
	URL  string `yaml:"url" koanf:"url"`
}

// BuildConfig controls the static export
type BuildConfig struct {
	Output  string   `yaml:"output" koanf:"output"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// Load reads configuration from the given YAML file over the defaults,
// then overlays PORTFOLIO_* environment variables. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// PORTFOLIO_SITE__ROOT -> site.root, PORTFOLIO_CONTENT_DIR -> content_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.applyDefaults(DefaultConfig())

	if serverAddr := os.Getenv("SERVER_ADDR"); serverAddr != "" {
		cfg.Server.Addr = serverAddr
	}

	return cfg, nil
}

// applyDefaults fills every unset field from d
func (c *Config) applyDefaults(d *Config) {
	setDefault(&c.Server.Addr, d.Server.Addr)
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = d.Server.AllowedOrigins
	}
	setDefault(&c.ContentDir, d.ContentDir)
	if c.Components.Dir == "" {
		c.Components.Dir = filepath.Join(c.ContentDir, "components")
	}
	setDefault(&c.Site.Title, d.Site.Title)
	setDefault(&c.Site.Tagline, d.Site.Tagline)
	setDefault(&c.Site.Logo, d.Site.Logo)
	setDefault(&c.Site.Copyright, d.Site.Copyright)
	setDefault(&c.Awards.Path, d.Awards.Path)
	if len(c.Nav) == 0 {
		c.Nav = d.Nav
	}
	setDefault(&c.Build.Output, d.Build.Output)
	if len(c.Build.Include) == 0 {
		c.Build.Include = d.Build.Include
	}
	if len(c.Build.Exclude) == 0 {
		c.Build.Exclude = d.Build.Exclude
	}
	setDefault(&c.Log.Level, d.Log.Level)
	setDefault(&c.Log.Format, d.Log.Format)
}

func setDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Build.Output == "" {
		return fmt.Errorf("build.output is required")
	}

	seen := make(map[string]bool, len(c.Nav))
	for i, link := range c.Nav {
		if link.Href == "" || link.Label == "" {
			return fmt.Errorf("nav[%d]: href and label are required", i)
		}
		if _, err := models.ParseNavGroup(string(link.Group)); err != nil {
			return fmt.Errorf("nav[%d]: %w", i, err)
		}
		if seen[link.Href] {
			return fmt.Errorf("nav[%d]: duplicate href %q", i, link.Href)
		}
		seen[link.Href] = true
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log.format %q: must be json or console", c.Log.Format)
	}

	return nil
}

// AwardsFile returns the awards JSON path relative to the content dir
func (c *Config) AwardsFile() string {
	return filepath.ToSlash(c.Awards.Path)
}
