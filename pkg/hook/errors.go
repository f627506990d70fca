// Package hook provides hook identity, hook lookup and error definitions.
package hook

import "errors"

// Error definitions for hook package.
var (
	ErrInvalidHookName = errors.New("invalid hook name")
	ErrNoHooksDirNames = errors.New("no hooks directory names given")
	ErrProbe           = errors.New("failed to probe directory for hook")
)
