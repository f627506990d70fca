package dispatch

import "github.com/lerenn/git-hooks-dispatch/pkg/hook"

// hookSet keeps hooks unique by identity, in insertion order.
type hookSet struct {
	hooks []hook.Hook
	seen  map[hook.Key]struct{}
}

func newHookSet() *hookSet {
	return &hookSet{seen: make(map[hook.Key]struct{})}
}

// Add appends h unless a hook with the same identity is already present.
// It reports whether h was added.
func (s *hookSet) Add(h hook.Hook) bool {
	if _, ok := s.seen[h.Key()]; ok {
		return false
	}
	s.seen[h.Key()] = struct{}{}
	s.hooks = append(s.hooks, h)
	return true
}

func (s *hookSet) List() []hook.Hook {
	return s.hooks
}
