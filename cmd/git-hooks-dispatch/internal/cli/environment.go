// Package cli resolves the command line, environment and file settings of git-hooks-dispatch.
package cli

import (
	"slices"
	"strings"
)

// EnvPrefix prefixes every environment variable read by git-hooks-dispatch.
const EnvPrefix = "GIT_HOOKS_DISPATCH_"

// Environment variables.
const (
	EnvHooksDirs   = EnvPrefix + "HOOKS_DIRS"
	EnvIncludeRoot = EnvPrefix + "INCLUDE_ROOT"
	EnvVerbose     = EnvPrefix + "VERBOSE"
	EnvLogLevel    = EnvPrefix + "LOG"
)

// Environment is a snapshot of the process environment, taken once at start.
type Environment map[string]string

// ParseEnvironment builds an Environment from KEY=VALUE pairs as returned by os.Environ.
func ParseEnvironment(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

// GitVars returns the GIT_* variables as sorted KEY=VALUE pairs.
func (e Environment) GitVars() []string {
	var vars []string
	for key, value := range e {
		if strings.HasPrefix(key, "GIT_") {
			vars = append(vars, key+"="+value)
		}
	}
	slices.Sort(vars)
	return vars
}
