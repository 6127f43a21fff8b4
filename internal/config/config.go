// Package config provides the global gitlite configuration: where project
// state lives and how to authenticate with GitHub. Per-project settings are
// part of the repository record itself, not this file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the global gitlite configuration
type Config struct {
	// StateDB is the path of the sqlite database holding project records.
	StateDB string `yaml:"state_db"`
	// Token is the GitHub bearer token. The GITHUB_TOKEN environment
	// variable takes precedence when set.
	Token string `yaml:"token"`
	// TokenFile points at a file containing the token, read when Token is
	// empty.
	TokenFile string `yaml:"token_file"`
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".gitlite", "config.yaml"), nil
}

// Load reads and parses the configuration file. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// ResolveToken returns the GitHub token: environment first, then the config
// value, then the token file. An empty result means not authenticated.
func (c *Config) ResolveToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if c.Token != "" {
		return c.Token
	}
	if c.TokenFile != "" {
		data, err := os.ReadFile(os.ExpandEnv(c.TokenFile))
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
