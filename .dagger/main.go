// CI functions for git-hooks-dispatch.
//
// Lint, tests and cross-compiled builds run in containers so that local runs
// and CI runs use the same toolchain.

package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"git-hooks-dispatch/dagger/internal/dagger"
)

const containerPath = "/go/src/github.com/lerenn/git-hooks-dispatch"

// Platforms the binary is released for, as GOOS/GOARCH.
var platforms = []string{
	"linux/386",
	"linux/amd64",
	"linux/arm64",
	"linux/riscv64",
	"darwin/amd64",
	"darwin/arm64",
	"windows/amd64",
}

type GitHooksDispatch struct{}

// Lint runs golangci-lint on the main repo (./...) only.
func (ci *GitHooksDispatch) Lint(sourceDir *dagger.Directory) *dagger.Container {
	c := dag.Container().
		From("golangci/golangci-lint:v2.4.0").
		WithMountedCache("/root/.cache/golangci-lint", dag.CacheVolume("golangci-lint"))

	c = ci.withGoCodeAndCacheAsWorkDirectory(c, sourceDir)

	return c.WithExec([]string{"golangci-lint", "run", "--timeout", "10m", "./..."})
}

// UnitTests returns a container that runs the unit tests.
func (ci *GitHooksDispatch) UnitTests(sourceDir *dagger.Directory) *dagger.Container {
	c := dag.Container().From("golang:" + goVersion() + "-alpine")
	return ci.withGoCodeAndCacheAsWorkDirectory(c, sourceDir).
		WithExec([]string{"sh", "-c",
			"go test -tags=unit ./...",
		})
}

// IntegrationTests returns a container that runs the integration tests.
func (ci *GitHooksDispatch) IntegrationTests(sourceDir *dagger.Directory) *dagger.Container {
	c := dag.Container().From("golang:" + goVersion() + "-alpine").
		// Install git for integration tests
		WithExec([]string{"apk", "add", "--no-cache", "git"})

	return ci.withGoCodeAndCacheAsWorkDirectory(c, sourceDir).
		WithExec([]string{"sh", "-c",
			"go test -tags=integration ./...",
		})
}

// EndToEndTests returns a container that runs the end-to-end tests.
func (ci *GitHooksDispatch) EndToEndTests(sourceDir *dagger.Directory) *dagger.Container {
	c := dag.Container().From("golang:" + goVersion() + "-alpine").
		// Install git for end-to-end tests
		WithExec([]string{"apk", "add", "--no-cache", "git"}).
		// Configure git for testing
		WithExec([]string{"git", "config", "--global", "user.name", "Test User"}).
		WithExec([]string{"git", "config", "--global", "user.email", "test@example.com"})

	return ci.withGoCodeAndCacheAsWorkDirectory(c, sourceDir).
		WithExec([]string{"sh", "-c",
			"go test -tags=e2e ./test/ -v",
		})
}

// Check runs the linter and every test suite.
func (ci *GitHooksDispatch) Check(ctx context.Context, sourceDir *dagger.Directory) error {
	steps := map[string]*dagger.Container{
		"lint":              ci.Lint(sourceDir),
		"unit tests":        ci.UnitTests(sourceDir),
		"integration tests": ci.IntegrationTests(sourceDir),
		"end-to-end tests":  ci.EndToEndTests(sourceDir),
	}

	for name, c := range steps {
		if _, err := c.Sync(ctx); err != nil {
			return fmt.Errorf("%s failed: %w", name, err)
		}
	}

	return nil
}

// Build cross-compiles the binary for every released platform.
func (ci *GitHooksDispatch) Build(sourceDir *dagger.Directory, version string) *dagger.Directory {
	out := dag.Directory()
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")

		binaryName := fmt.Sprintf("git-hooks-dispatch-%s-%s", goos, goarch)
		if goos == "windows" {
			binaryName += ".exe"
		}

		c := dag.Container().From("golang:" + goVersion() + "-alpine")
		c = ci.withGoCodeAndCacheAsWorkDirectory(c, sourceDir).
			WithEnvVariable("CGO_ENABLED", "0").
			WithEnvVariable("GOOS", goos).
			WithEnvVariable("GOARCH", goarch).
			WithExec([]string{"go", "build",
				"-ldflags", "-s -w -X main.version=" + version,
				"-o", "/out/" + binaryName,
				"./cmd/git-hooks-dispatch",
			})

		out = out.WithFile(binaryName, c.File("/out/"+binaryName))
	}

	return out
}

func (ci *GitHooksDispatch) withGoCodeAndCacheAsWorkDirectory(
	c *dagger.Container,
	sourceDir *dagger.Directory,
) *dagger.Container {
	return c.
		// Add Go caches
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("gobuild")).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("gocache")).

		// Add source code
		WithMountedDirectory(containerPath, sourceDir).

		// Add workdir
		WithWorkdir(containerPath)
}

func goVersion() string {
	return runtime.Version()[2:]
}
