package app

import (
	"sync"
)

// current holds the process-local "current App", matching this module's
// design note that "UpdatesService and ViewProcessService are per-app
// process-locals with explicit init/exit" and that "a header-like object
// (APP) provides the current id and scope; nothing is truly global across
// tests". Unlike a bare package-level *App, every accessor
// below is explicit about failure (ok bool) rather than panicking, so tests
// that never call Init still behave predictably.
var (
	currentMu sync.RWMutex
	current *App
)

// Init installs a as the process-local current App, returning a scope
// token whose Exit call clears it again. Nesting is allowed (the previous
// current App, if any, is restored on Exit) so tests can Init their own App
// around a subtest without disturbing an enclosing one.
func Init(a *App) *Scope {
	currentMu.Lock()
	prev := current
	current = a
	currentMu.Unlock()
	return &Scope{prev: prev}
}

// Scope is the token Init returns; Exit restores whatever App (possibly
// nil) was current before this Init call.
type Scope struct {
	prev *App
}

// Exit restores the previously current App.
func (s *Scope) Exit() {
	currentMu.Lock()
	current = s.prev
	currentMu.Unlock()
}

// Current returns the process-local current App, or (nil, false) if Init
// has not been called (or has since been Exit'd).
func Current() (*App, bool) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current, current != nil
}

// MustCurrent panics if no App is current. Reserved for call sites deep in
// the widget layer (out of scope here) that have no reasonable fallback;
// this module's own packages always take their dependencies explicitly
// instead of reaching for MustCurrent.
func MustCurrent() *App {
	a, ok := Current()
	if !ok {
		panic("app: no current App (Init was never called, or has since Exit'd)")
	}
	return a
}
