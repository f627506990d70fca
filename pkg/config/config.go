// Package config provides configuration management functionality for git-hooks-dispatch.
package config

import (
	"fmt"
	"path/filepath"
)

// FileName is the repository level configuration file, looked up at the repository root.
const FileName = ".git-hooks-dispatch.yaml"

// DefaultHooksDirs are the hooks directory names tried when none are configured.
var DefaultHooksDirs = []string{"git-hooks", "hooks"}

// Config represents the application configuration.
type Config struct {
	// HooksDirs are hooks directory names, tried in order.
	HooksDirs []string `yaml:"hooks_dirs"`
	// IncludeRoot makes the repository root itself a hook location.
	IncludeRoot bool `yaml:"include_root"`
	// Verbose echoes each dispatched hook before it runs.
	Verbose bool `yaml:"verbose"`
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if len(c.HooksDirs) == 0 {
		return ErrHooksDirsEmpty
	}

	for _, name := range c.HooksDirs {
		if err := ValidateHooksDir(name); err != nil {
			return err
		}
	}

	return nil
}

// ValidateHooksDir checks that name is a relative path staying below the directory it is joined to.
func ValidateHooksDir(name string) error {
	if name == "" || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHooksDir, name)
	}
	return nil
}
