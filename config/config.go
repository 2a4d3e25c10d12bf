package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/strutil"
)

// Config represents the complete crawler configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Archive ArchiveConfig `yaml:"archive"`
}

// SourceConfig contains AWStats endpoint settings
type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`
	Config         string `yaml:"config"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Workers        int    `yaml:"workers"`
	UserAgent      string `yaml:"user_agent"`
}

// OutputConfig contains export destinations and chart geometry. An empty
// JSON path leaves the JSON export off; CSV and chart always have one.
type OutputConfig struct {
	CSV         string `yaml:"csv"`
	JSON        string `yaml:"json"`
	Chart       string `yaml:"chart"`
	ChartWidth  int    `yaml:"chart_width"`
	ChartHeight int    `yaml:"chart_height"`
}

// ArchiveConfig contains run history database settings
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// DefaultConfig returns a pinned default configuration.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:        "https://glua.ua.pt/awstats/cgi-bin/awstats.pl",
			Config:         "http",
			TimeoutSeconds: 30,
			Workers:        1,
			UserAgent:      "mirrorstats/1.0",
		},
		Output: OutputConfig{
			CSV:         "monthly_bandwidth_data.csv",
			Chart:       "yearly_bandwidth_usage.png",
			ChartWidth:  1280,
			ChartHeight: 640,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			DBPath:  "data/bandwidth.db",
		},
	}
}

// Load reads YAML configuration over the defaults and normalizes the result.
// An empty path returns the defaults untouched; a path that cannot be read is
// an error so a typoed flag fails loudly instead of crawling with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize fills defaults and clamps invalid values.
func (c *Config) normalize() {
	if c == nil {
		return
	}
	def := DefaultConfig()
	c.Source.BaseURL = strings.TrimSpace(c.Source.BaseURL)
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = def.Source.BaseURL
	}
	c.Source.Config = strings.TrimSpace(c.Source.Config)
	if c.Source.Config == "" {
		c.Source.Config = def.Source.Config
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = def.Source.TimeoutSeconds
	}
	if c.Source.Workers <= 0 {
		c.Source.Workers = def.Source.Workers
	}
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = def.Source.UserAgent
	}
	c.Output.CSV = strings.TrimSpace(c.Output.CSV)
	if c.Output.CSV == "" {
		c.Output.CSV = def.Output.CSV
	}
	c.Output.JSON = strings.TrimSpace(c.Output.JSON)
	c.Output.Chart = strings.TrimSpace(c.Output.Chart)
	if c.Output.Chart == "" {
		c.Output.Chart = def.Output.Chart
	}
	if c.Output.ChartWidth <= 0 {
		c.Output.ChartWidth = def.Output.ChartWidth
	}
	if c.Output.ChartHeight <= 0 {
		c.Output.ChartHeight = def.Output.ChartHeight
	}
	c.Archive.DBPath = strings.TrimSpace(c.Archive.DBPath)
	if c.Archive.DBPath == "" {
		c.Archive.DBPath = def.Archive.DBPath
	}
}

// Validate performs sanity checks on the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil {
		return fmt.Errorf("config: source.base_url: %w", err)
	}
	switch strutil.NormalizeLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("config: source.base_url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("config: source.base_url is missing a host")
	}
	if c.Source.Workers > 16 {
		return fmt.Errorf("config: source.workers must be between 1 and 16")
	}
	return nil
}

// Print displays the effective configuration
func (c *Config) Print() {
	fmt.Printf("Source: %s (config %s)\n", c.Source.BaseURL, c.Source.Config)
	fmt.Printf("Fetch: timeout %ds, workers %d\n", c.Source.TimeoutSeconds, c.Source.Workers)
	fmt.Printf("CSV: %s\n", c.Output.CSV)
	if c.Output.JSON != "" {
		fmt.Printf("JSON: %s\n", c.Output.JSON)
	}
	fmt.Printf("Chart: %s (%dx%d)\n", c.Output.Chart, c.Output.ChartWidth, c.Output.ChartHeight)
	if c.Archive.Enabled {
		fmt.Printf("Archive: %s\n", c.Archive.DBPath)
	}
}
