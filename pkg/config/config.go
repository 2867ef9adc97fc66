package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen"`
		Timeout time.Duration `yaml:"timeout"`
		DevMode bool          `yaml:"dev_mode"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"dsn"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	} `yaml:"database"`

	Feeds  FeedsConfig  `yaml:"feeds"`
	Images ImagesConfig `yaml:"images"`
}

// FeedsConfig holds the upstream feed settings
type FeedsConfig struct {
	CalendarURL string        `yaml:"calendar_url"`
	NewsURL     string        `yaml:"news_url"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	Organizer   string        `yaml:"organizer"`
	NewsSource  string        `yaml:"news_source"`
	InsecureTLS bool          `yaml:"insecure_tls"` // dev only, requires server.dev_mode
}

// ImagesConfig holds the AI illustration generation settings
type ImagesConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"` // OpenAI-compatible images API
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Size     string        `yaml:"size"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:portal.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for feeds
	if cfg.Feeds.Timeout == 0 {
		cfg.Feeds.Timeout = 15 * time.Second
	}
	if cfg.Feeds.UserAgent == "" {
		cfg.Feeds.UserAgent = "svbf-portal/1.0"
	}
	if cfg.Feeds.Organizer == "" {
		cfg.Feeds.Organizer = "Svenska Bågskytteförbundet"
	}
	if cfg.Feeds.NewsSource == "" {
		cfg.Feeds.NewsSource = "Svenska Bågskytteförbundet"
	}

	// set defaults for images
	if cfg.Images.Model == "" {
		cfg.Images.Model = "gpt-image-1"
	}
	if cfg.Images.Size == "" {
		cfg.Images.Size = "1024x1024"
	}
	if cfg.Images.Timeout == 0 {
		cfg.Images.Timeout = 60 * time.Second
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Feeds.CalendarURL == "" {
		return fmt.Errorf("feeds.calendar_url is required")
	}
	if cfg.Feeds.NewsURL == "" {
		return fmt.Errorf("feeds.news_url is required")
	}
	// skipping TLS verification is a development convenience only
	if cfg.Feeds.InsecureTLS && !cfg.Server.DevMode {
		return fmt.Errorf("feeds.insecure_tls requires server.dev_mode")
	}

	if cfg.Images.Enabled && cfg.Images.APIKey == "" {
		return fmt.Errorf("images.api_key is required when images.enabled is set")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
