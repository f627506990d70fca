// Package dispatch discovers the hooks triggered by working tree changes and runs them.
package dispatch

import "errors"

// Error definitions for dispatch package.
var (
	ErrRepoRootNotAbsolute = errors.New("repository root must be an absolute path")
	ErrRepoRootNotDir      = errors.New("repository root is not a directory")
	ErrResolvePath         = errors.New("failed to resolve path")
	ErrPathEncoding        = errors.New("path is not valid UTF-8")
	ErrPathOutsideRepo     = errors.New("path is outside the repository")
	ErrExecute             = errors.New("failed to execute hook")
)
