// Package main provides the command-line interface for git-hooks-dispatch.
package main

import (
	"os"
)

var version = "dev"

func main() {
	a := newApp(os.Environ(), os.Stdout, os.Stderr)
	os.Exit(a.execute(os.Args[1:]))
}
