// Package config loads service configuration from an optional YAML file,
// .env files and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobpilot.local/internal/logger"
)

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 5000
	defaultServerTimeout   = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDatabasePath    = "jobs.db"
	defaultNotionTimeout   = 10 * time.Second
	maxPort                = 65535
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      logger.Config  `yaml:"log"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Notion   NotionConfig   `yaml:"notion"`
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" yaml:"host"`
	Port            int           `env:"PORT"        yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path string `env:"JOBPILOT_DB" yaml:"path"`
}

type TrackerConfig struct {
	// StrictStatus rejects statuses outside the known set instead of
	// storing them as-is.
	StrictStatus bool `env:"JOBPILOT_STRICT_STATUS" yaml:"strict_status"`
}

type NotionConfig struct {
	Token      string        `env:"NOTION_TOKEN" yaml:"token"`
	DatabaseID string        `env:"NOTION_DB_ID" yaml:"database_id"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Enabled reports whether Notion mirroring is configured.
func (n NotionConfig) Enabled() bool {
	return n.Token != "" && n.DatabaseID != ""
}

// Load reads path (which may be empty or missing), applies defaults and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := &Config{}
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}

	setDefaults(cfg)
	applyEnvOverrides(cfg)
	cfg.Notion.DatabaseID = normalizeNotionID(cfg.Notion.DatabaseID)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if (c.Notion.Token == "") != (c.Notion.DatabaseID == "") {
		return errors.New("notion.token and notion.database_id must be set together")
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Notion.Timeout == 0 {
		cfg.Notion.Timeout = defaultNotionTimeout
	}
}

// normalizeNotionID removes dashes if present.
func normalizeNotionID(id string) string {
	id = strings.TrimSpace(id)
	return strings.ReplaceAll(id, "-", "")
}
