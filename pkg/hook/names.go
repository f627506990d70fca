package hook

import (
	"fmt"
	"slices"
)

// KnownNames lists the hook names git invokes.
var KnownNames = []string{
	"applypatch-msg",
	"pre-applypatch",
	"post-applypatch",
	"pre-commit",
	"pre-merge-commit",
	"prepare-commit-msg",
	"commit-msg",
	"post-commit",
	"pre-rebase",
	"post-checkout",
	"post-merge",
	"pre-push",
	"pre-receive",
	"update",
	"proc-receive",
	"post-receive",
	"post-update",
	"reference-transaction",
	"push-to-checkout",
	"pre-auto-gc",
	"post-rewrite",
	"sendemail-validate",
	"fsmonitor-watchman",
	"p4-changelist",
	"p4-prepare-changelist",
	"p4-post-changelist",
	"p4-pre-submit",
	"post-index-change",
}

// IsKnownName reports whether name is a hook git invokes.
func IsKnownName(name string) bool {
	return slices.Contains(KnownNames, name)
}

// ValidateName returns ErrInvalidHookName unless name is a known hook name.
func ValidateName(name string) error {
	if !IsKnownName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHookName, name)
	}
	return nil
}
