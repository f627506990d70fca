package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Status executes `git status --porcelain=v1 -z` in the repository at repoRoot.
func (g *realGit) Status(repoRoot string) ([]ChangeRecord, error) {
	cmd := exec.Command("git", "status", "--porcelain=v1", "-z", "--untracked-files=normal")
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return nil, commandError(ErrStatusFailed, "git status", err)
	}

	return parsePorcelain(output)
}

// parsePorcelain parses NUL separated `git status --porcelain=v1 -z` output.
// Renames and copies carry their source path as an extra NUL separated field.
func parsePorcelain(output []byte) ([]ChangeRecord, error) {
	fields := bytes.Split(output, []byte{0})
	records := make([]ChangeRecord, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) == 0 {
			continue
		}
		if len(entry) < 4 || entry[2] != ' ' {
			return nil, fmt.Errorf("%w: entry %q", ErrMalformedPorcelain, entry)
		}

		x, y := entry[0], entry[1]
		record := ChangeRecord{
			Path:   string(entry[3:]),
			Status: parseXY(x, y),
		}

		if x == 'R' || x == 'C' || y == 'R' || y == 'C' {
			i++
			if i >= len(fields) || len(fields[i]) == 0 {
				return nil, fmt.Errorf("%w: missing source path for %q", ErrMalformedPorcelain, record.Path)
			}
			record.OrigPath = string(fields[i])
		}

		records = append(records, record)
	}

	return records, nil
}

func parseXY(x, y byte) StatusFlags {
	switch {
	case x == '?' && y == '?':
		return WtNew
	case x == '!' && y == '!':
		return Ignored
	case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
		return Conflicted
	}

	var flags StatusFlags
	switch x {
	case 'A', 'C':
		flags |= IndexNew
	case 'M':
		flags |= IndexModified
	case 'D':
		flags |= IndexDeleted
	case 'R':
		flags |= IndexRenamed
	case 'T':
		flags |= IndexTypeChange
	}

	switch y {
	case 'A':
		// intent-to-add entries (`git add -N`)
		flags |= WtNew
	case 'M':
		flags |= WtModified
	case 'D':
		flags |= WtDeleted
	case 'R':
		flags |= WtRenamed
	case 'T':
		flags |= WtTypeChange
	}

	return flags
}

// commandError wraps a failed git invocation, keeping git's stderr in the message.
func commandError(sentinel error, command string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if strings.Contains(stderr, "not a git repository") {
			return fmt.Errorf("%w: %w: %s", sentinel, ErrNotRepository, stderr)
		}
		return fmt.Errorf("%w: %w (command: %s, output: %s)", sentinel, err, command, stderr)
	}
	return fmt.Errorf("%w: %w (command: %s)", sentinel, err, command)
}
