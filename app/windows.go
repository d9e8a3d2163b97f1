package app

import (
	"sync"

	"github.com/arborui/arbor/tree"
)

// WindowSet is the live set of open windows' info-tree snapshots, kept only
// so DeliveryList.FulfillSearch has something to search across. It
// implements scheduler.Windows. Concrete widget-tree construction is out of
// scope for this module; callers (the widget layer) call Put every time a
// window rebuilds its info tree during the INFO phase, and Remove when a
// window closes.
type WindowSet struct {
	mu sync.RWMutex
	m map[tree.WindowId]tree.Lookup
}

// NewWindowSet returns an empty WindowSet.
func NewWindowSet() *WindowSet {
	return &WindowSet{m: map[tree.WindowId]tree.Lookup{}}
}

// Put registers or replaces the info-tree snapshot for a window.
func (s *WindowSet) Put(t tree.Lookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[t.Window()] = t
}

// Remove drops a closed window's snapshot and releases its WindowId for
// reuse ("WindowId may be reused after close").
func (s *WindowSet) Remove(id tree.WindowId) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	tree.ReleaseWindowId(id)
}

// Get looks up a single window's current snapshot.
func (s *WindowSet) Get(id tree.WindowId) (tree.Lookup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.m[id]
	return t, ok
}

// All returns every currently registered window snapshot, implementing
// scheduler.Windows.
func (s *WindowSet) All() []tree.Lookup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tree.Lookup, 0, len(s.m))
	for _, t := range s.m {
		out = append(out, t)
	}
	return out
}
