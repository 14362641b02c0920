package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes one upstream retrieval: either a REST endpoint
// ("api") or a static JSON snapshot on disk ("static").
type SourceConfig struct {
	Type string `yaml:"type"` // api or static
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Refresh struct {
		Interval   time.Duration `yaml:"interval"`
		Subsystems []string      `yaml:"subsystems"` // canonical order; first entry is the bot process
	} `yaml:"refresh"`
	Sources struct {
		Trades   SourceConfig `yaml:"trades"`
		Statuses SourceConfig `yaml:"statuses"`
		Signals  SourceConfig `yaml:"signals"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"sources"`
	Bot struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"bot"`
	Advisor struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"advisor"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("BOT_API_URL"); v != "" {
		c.Bot.BaseURL = v
	}
	if v := os.Getenv("ADVISOR_URL"); v != "" {
		c.Advisor.URL = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("SUBSYSTEMS"); v != "" {
		c.Refresh.Subsystems = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive")
	}
	if len(c.Refresh.Subsystems) == 0 {
		return fmt.Errorf("refresh.subsystems cannot be empty")
	}
	for name, s := range map[string]SourceConfig{
		"trades":   c.Sources.Trades,
		"statuses": c.Sources.Statuses,
		"signals":  c.Sources.Signals,
	} {
		switch s.Type {
		case "api":
			if s.URL == "" {
				return fmt.Errorf("sources.%s.url is required for type 'api'", name)
			}
		case "static":
			if s.Path == "" {
				return fmt.Errorf("sources.%s.path is required for type 'static'", name)
			}
		default:
			return fmt.Errorf("sources.%s.type must be 'api' or 'static', got '%s'", name, s.Type)
		}
	}
	return nil
}
