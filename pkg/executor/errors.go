// Package executor runs hook scripts as child processes.
package executor

import "errors"

// Error definitions for executor package.
var (
	ErrSpawn = errors.New("failed to run hook")
)
