package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "aidb"

// Source types understood by the loader.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceFeed   = "feed"
)

type Source struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	URL         string `yaml:"url,omitempty"`
	Path        string `yaml:"path,omitempty"`
	Category    string `yaml:"category,omitempty"`    // feed only
	Subcategory string `yaml:"subcategory,omitempty"` // feed only
	Org         string `yaml:"org,omitempty"`         // feed only
	Enabled     bool   `yaml:"enabled"`
}

// CategoryMeta is display metadata for one category key.
type CategoryMeta struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

type TagTypeMeta struct {
	Key   string `yaml:"key"`
	Color string `yaml:"color"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type Config struct {
	FetchTimeout string         `yaml:"fetch_timeout"`
	Sources      []Source       `yaml:"sources"`
	Categories   []CategoryMeta `yaml:"categories"`
	TagTypes     []TagTypeMeta  `yaml:"tag_types"`
	Log          LogConfig      `yaml:"log"`
}

func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Category returns the display metadata for key, if configured.
func (c *Config) Category(key catalog.Category) (CategoryMeta, bool) {
	for _, m := range c.Categories {
		if m.Key == string(key) {
			return m, true
		}
	}
	return CategoryMeta{}, false
}

// TagColor returns the configured color for a tag type, or "".
func (c *Config) TagColor(t catalog.TagType) string {
	for _, m := range c.TagTypes {
		if m.Key == string(t) {
			return m.Color
		}
	}
	return ""
}

// LogLevel resolves the log level, letting AIDB_LOG_LEVEL override config.
func (c *Config) LogLevel() string {
	if lvl := os.Getenv("AIDB_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// OverrideSource replaces the configured sources with a single source at
// location, which may be a URL, a JSON file or a SQLite database.
func (c *Config) OverrideSource(location string) {
	src := Source{Name: location, Type: SourceJSON, Enabled: true}
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		src.URL = location
	case strings.HasSuffix(location, ".db"), strings.HasSuffix(location, ".sqlite"):
		src.Type = SourceSQLite
		src.Path = location
	default:
		src.Path = location
	}
	c.Sources = []Source{src}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run. A failed write is
			// non-fatal: the embedded defaults still apply.
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	mergeDisplayDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeDisplayDefaults fills in category and tag-type metadata the user
// config leaves out, so a config listing only sources still renders.
func mergeDisplayDefaults(cfg, defaults *Config) {
	have := make(map[string]bool, len(cfg.Categories))
	for _, m := range cfg.Categories {
		have[m.Key] = true
	}
	for _, m := range defaults.Categories {
		if !have[m.Key] {
			cfg.Categories = append(cfg.Categories, m)
		}
	}

	haveTag := make(map[string]bool, len(cfg.TagTypes))
	for _, m := range cfg.TagTypes {
		haveTag[m.Key] = true
	}
	for _, m := range defaults.TagTypes {
		if !haveTag[m.Key] {
			cfg.TagTypes = append(cfg.TagTypes, m)
		}
	}

	if cfg.FetchTimeout == "" {
		cfg.FetchTimeout = defaults.FetchTimeout
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{SourceJSON: true, SourceSQLite: true, SourceFeed: true}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if !validTypes[s.Type] {
			return fmt.Errorf("source %q: unknown type %q (valid: json, sqlite, feed)", s.Name, s.Type)
		}
		if err := validateLocation(s); err != nil {
			return err
		}
		if s.Type == SourceFeed && !catalog.Category(s.Category).Valid() {
			return fmt.Errorf("source %q: feed category must be one of A-F, got %q", s.Name, s.Category)
		}
	}

	for _, m := range cfg.Categories {
		if !catalog.Category(m.Key).Valid() {
			return fmt.Errorf("categories: unknown key %q (valid: A-F)", m.Key)
		}
	}
	for _, m := range cfg.TagTypes {
		if !catalog.TagType(m.Key).Valid() {
			return fmt.Errorf("tag_types: unknown key %q", m.Key)
		}
	}

	if cfg.FetchTimeout != "" {
		if _, err := time.ParseDuration(cfg.FetchTimeout); err != nil {
			return fmt.Errorf("fetch_timeout: %w", err)
		}
	}
	return nil
}

func validateLocation(s Source) error {
	switch s.Type {
	case SourceSQLite:
		if s.Path == "" {
			return fmt.Errorf("source %q: path is required", s.Name)
		}
		return nil
	case SourceJSON:
		if s.URL == "" && s.Path == "" {
			return fmt.Errorf("source %q: url or path is required", s.Name)
		}
		if s.URL == "" {
			return nil
		}
	case SourceFeed:
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
	}
	return nil
}
