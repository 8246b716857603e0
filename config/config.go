// Package config loads a project's top-level cortex.toml, grounded on
// internal/config's getConfigPath/LoadConfig: walk up from the current
// directory until a project-root marker is hit, then parse the file
// found (if any) with go-toml/v2.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/lockplane/cortex/step"
)

const fileName = "cortex.toml"

// EnvironmentConfig is one named environment's connection string.
type EnvironmentConfig struct {
	ConnectionURL string `toml:"connection_url"`
}

// EngineTOMLConfig mirrors engine.Config's fields for TOML
// serialization; config does not import engine to avoid a needless
// dependency edge, so host applications translate one into the other.
type EngineTOMLConfig struct {
	MinVersion  string   `toml:"min_version"`
	MaxVersion  string   `toml:"max_version"`
	Plugins     []string `toml:"plugins"`
	DefaultMode string   `toml:"default_mode"`
}

// Config is the parsed shape of cortex.toml.
type Config struct {
	Environments map[string]EnvironmentConfig `toml:"environments"`
	Engine       EngineTOMLConfig             `toml:"engine"`

	// path is the directory cortex.toml was found in, unexported since
	// it is not part of the TOML document itself.
	path string
}

// Load walks up from the current working directory looking for
// cortex.toml until a project-root marker (.git, go.mod) is hit. It
// returns an empty Config, not an error, when no file is found —
// matching the teacher's LoadConfig fallback for hosts that configure
// Cortex purely through code.
func Load() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return loadFrom(dir)
}

func loadFrom(startDir string) (*Config, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return parseFile(candidate)
		}
		if isProjectRoot(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return &Config{}, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.path = filepath.Dir(path)
	return &cfg, nil
}

func isProjectRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}
	return false
}

// Dir returns the directory cortex.toml was loaded from, empty when no
// file was found.
func (c *Config) Dir() string {
	if c == nil {
		return ""
	}
	return c.path
}

// ConnectionURL returns the named environment's connection string, or
// an error if the environment is not defined.
func (c *Config) ConnectionURL(environment string) (string, error) {
	if c == nil || c.Environments == nil {
		return "", fmt.Errorf("config: environment %q not defined", environment)
	}
	env, ok := c.Environments[environment]
	if !ok {
		return "", fmt.Errorf("config: environment %q not defined", environment)
	}
	return env.ConnectionURL, nil
}

// DefaultMode parses Engine.DefaultMode into a step.ExecutionMode,
// falling back to step.Unset (defer to the engine's own default) for
// an empty or unrecognized value.
func (c *Config) DefaultMode() step.ExecutionMode {
	if c == nil {
		return step.Unset
	}
	switch c.Engine.DefaultMode {
	case "optimistic":
		return step.Optimistic
	case "transactional":
		return step.Transactional
	default:
		return step.Unset
	}
}
