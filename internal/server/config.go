package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the backend configuration, loaded from a YAML file.
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`
	LogLevel  string `yaml:"log_level"`

	// Advertise controls the mDNS advertisement.
	Advertise bool `yaml:"advertise"`
	// Name is the mDNS instance name. Defaults to the hostname.
	Name string `yaml:"name"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Host:      "0.0.0.0",
		Port:      8090,
		DBPath:    "zedbee.db",
		LogLevel:  "info",
		Advertise: true,
	}
}

// LoadConfig reads a YAML config file, applying defaults for unset fields.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "zedbee.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// InstanceName returns the mDNS instance name, falling back to the
// hostname.
func (c *Config) InstanceName() string {
	if c.Name != "" {
		return c.Name
	}
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "zedbee-gateway"
	}
	return "zedbee-" + hostname
}
