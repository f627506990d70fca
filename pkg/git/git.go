package git

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=git.go -destination=mocks/git.gen.go -package=mocks

// Git interface provides the Git queries needed to dispatch hooks.
type Git interface {
	// Status lists the entries of `git status` for the repository at repoRoot,
	// covering both the index and the working tree, in the order git reports them.
	Status(repoRoot string) ([]ChangeRecord, error)

	// TopLevel returns the absolute path of the working tree containing dir.
	TopLevel(dir string) (string, error)
}

type realGit struct {
	// No fields needed for basic Git operations
}

// NewGit creates a new Git instance.
func NewGit() Git {
	return &realGit{}
}
