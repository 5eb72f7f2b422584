// Package config provides configuration loading and validation for the
// planner service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// DefaultDatabaseURL is the SQLite file used when no database is configured.
const DefaultDatabaseURL = "coverage_planner.db"

// DefaultPort is the HTTP listen port used when none is configured.
const DefaultPort = 8080

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values fall back to environment
// variables and then to defaults.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // postgres:// URL or SQLite file path
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a configuration from the PORT and DATABASE_URL environment
// variables.
func FromEnv() *Config {
	cfg := &Config{DatabaseURL: os.Getenv("DATABASE_URL")}
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Merge fills unset fields from another config.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if c.Port == 0 {
		c.Port = other.Port
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = other.DatabaseURL
	}
}

// ApplyDefaults fills remaining unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = DefaultDatabaseURL
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	return nil
}
