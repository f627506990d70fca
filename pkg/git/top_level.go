package git

import (
	"os/exec"
	"strings"
)

// TopLevel executes `git rev-parse --show-toplevel` in dir.
func (g *realGit) TopLevel(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", commandError(ErrTopLevelFailed, "git rev-parse --show-toplevel", err)
	}

	return strings.TrimSpace(string(output)), nil
}
