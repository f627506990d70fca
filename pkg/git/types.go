package git

import "strings"

// StatusFlags is the set of change kinds of one status entry. Index flags
// describe the staged state, Wt flags the working tree state.
type StatusFlags uint16

// Change kinds.
const (
	IndexNew StatusFlags = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChange
	WtNew
	WtModified
	WtDeleted
	WtRenamed
	WtTypeChange
	Conflicted
	Ignored
)

// changedFlags are the kinds that make an entry eligible to trigger hooks.
// WtNew is left out: an untracked file never triggers hooks on its own.
const changedFlags = IndexNew | IndexModified | IndexDeleted | IndexRenamed | IndexTypeChange |
	WtModified | WtDeleted | WtRenamed | WtTypeChange

var flagNames = []struct {
	flag StatusFlags
	name string
}{
	{IndexNew, "INDEX_NEW"},
	{IndexModified, "INDEX_MODIFIED"},
	{IndexDeleted, "INDEX_DELETED"},
	{IndexRenamed, "INDEX_RENAMED"},
	{IndexTypeChange, "INDEX_TYPECHANGE"},
	{WtNew, "WT_NEW"},
	{WtModified, "WT_MODIFIED"},
	{WtDeleted, "WT_DELETED"},
	{WtRenamed, "WT_RENAMED"},
	{WtTypeChange, "WT_TYPECHANGE"},
	{Conflicted, "CONFLICTED"},
	{Ignored, "IGNORED"},
}

// Has reports whether all bits of flag are set.
func (s StatusFlags) Has(flag StatusFlags) bool {
	return s&flag == flag
}

// IsChanged reports whether the entry is known to the index or history in
// some changed form.
func (s StatusFlags) IsChanged() bool {
	return s&changedFlags != 0
}

func (s StatusFlags) String() string {
	if s == 0 {
		return "CURRENT"
	}

	var names []string
	for _, f := range flagNames {
		if s.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, " | ")
}

// ChangeRecord is one entry of the working tree status.
type ChangeRecord struct {
	// Path is relative to the repository root, slash separated.
	Path string
	// OrigPath is the source path of a rename or copy, empty otherwise.
	OrigPath string
	Status   StatusFlags
}
