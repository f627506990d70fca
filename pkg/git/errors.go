// Package git provides Git operations and error definitions.
package git

import "errors"

// Git-specific error types.
var (
	ErrNotRepository      = errors.New("not a git repository")
	ErrStatusFailed       = errors.New("failed to list working tree changes")
	ErrTopLevelFailed     = errors.New("failed to resolve repository top level")
	ErrMalformedPorcelain = errors.New("malformed git status output")
)
