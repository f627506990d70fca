package cli

import "errors"

// Error definitions for cli package.
var (
	ErrInvalidEnvironment = errors.New("invalid environment variable")
	ErrFailedToLoadConfig = errors.New("failed to load configuration")
)
