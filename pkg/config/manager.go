package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Manager interface provides configuration management functionality.
type Manager interface {
	// LoadConfig loads configuration from configPath, failing if it is missing.
	LoadConfig(configPath string) (Config, error)
	// LoadConfigWithFallback loads configuration from configPath, falling back
	// to the defaults if the file does not exist.
	LoadConfigWithFallback(configPath string) (Config, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig() Config
}

type realManager struct {
	// No fields needed for basic configuration operations
}

// NewManager creates a new Manager instance.
func NewManager() Manager {
	return &realManager{}
}

// LoadConfig loads configuration from the specified file path.
func (c *realManager) LoadConfig(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their default value
	config := c.DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigFileParse, configPath, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// LoadConfigWithFallback loads configuration from file with fallback to default.
func (c *realManager) LoadConfigWithFallback(configPath string) (Config, error) {
	config, err := c.LoadConfig(configPath)
	if errors.Is(err, ErrConfigFileNotFound) {
		return c.DefaultConfig(), nil
	}
	return config, err
}

// DefaultConfig returns the default configuration.
func (c *realManager) DefaultConfig() Config {
	return Config{
		HooksDirs: slices.Clone(DefaultHooksDirs),
	}
}
