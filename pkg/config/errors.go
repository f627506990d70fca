package config

import "errors"

// Error definitions for config package.
var (
	// Configuration file errors.
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileParse    = errors.New("failed to parse config file")
	// Configuration validation errors.
	ErrHooksDirsEmpty  = errors.New("hooks_dirs cannot be empty")
	ErrInvalidHooksDir = errors.New("invalid hooks directory name")
)
