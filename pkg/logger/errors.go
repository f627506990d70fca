package logger

import "errors"

// Error definitions for logger package.
var (
	ErrInvalidLevel = errors.New("invalid log level")
)
