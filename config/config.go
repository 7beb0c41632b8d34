package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/papertrade/journal"
)

// Config represents the complete simulator configuration
type Config struct {
	Portfolio PortfolioConfig `json:"portfolio" yaml:"portfolio"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Snapshot  SnapshotConfig  `json:"snapshot" yaml:"snapshot"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// PortfolioConfig contains portfolio initialization parameters
type PortfolioConfig struct {
	Name string `json:"name" yaml:"name"`
	// Seed fixes the random source; 0 means time-seeded.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DaysFile   string `json:"days_file,omitempty" yaml:"days_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// SnapshotConfig locates the JSON save file
type SnapshotConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ServerConfig contains HTTP server parameters
type ServerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Portfolio.Name == "" {
		return fmt.Errorf("portfolio.name is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.DaysFile == "" {
			return fmt.Errorf("journal trades_file and days_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Portfolio: PortfolioConfig{
			Name: "My Stock Portfolio",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			DaysFile:   "./days.csv",
		},
		Snapshot: SnapshotConfig{
			Path: "./portfolio.json",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// OpenJournal builds the journal backend named by the config.
func (c *Config) OpenJournal() (journal.Journal, error) {
	switch c.Journal.Type {
	case "csv":
		return journal.NewCSV(c.Journal.TradesFile, c.Journal.DaysFile)
	case "sqlite":
		return journal.NewSQLite(c.Journal.DBPath)
	default:
		return journal.Discard{}, nil
	}
}
