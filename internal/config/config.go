// Package config resolves the vault root and operational settings supplied
// out-of-band at process start.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Environment variables consulted when flags are not set.
const (
	EnvVault  = "NOTEGUARD_VAULT"
	EnvConfig = "NOTEGUARD_CONFIG"
)

// Config is the optional YAML configuration file.
type Config struct {
	// Vault is the sandbox root directory. Lowest-precedence source;
	// overridden by NOTEGUARD_VAULT and the --vault flag.
	Vault string `yaml:"vault"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Load reads the config file at path. An empty path means no config file was
// requested and yields a zero Config; a named file that cannot be read or
// parsed is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// VaultPath resolves the vault root from its three sources, highest
// precedence first: the --vault flag, NOTEGUARD_VAULT, the config file.
func VaultPath(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvVault); env != "" {
		return env
	}
	if cfg != nil {
		return cfg.Vault
	}
	return ""
}
