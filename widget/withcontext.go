package widget

import (
	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

// Mode selects what happens to flags a widget sets on itself while its
// Context is ambient.
type Mode int

const (
	// Bubble OR-merges newly raised flags into the enclosing widget's
	// flags, or into the Service if there is no enclosing widget.
	Bubble Mode = iota
	// Ignore discards flags raised during the scope (used by measure
	// passes that must not have side effects on the real tree).
	Ignore
)

// current is the single ambient slot threading the in-scope widget context
// through whatever code runs during a dispatch or update pass. The app loop
// is single-threaded cooperative, so a plain package variable is enough; no
// goroutine ever holds two scopes open at once.
var current *Context

// Current returns the ambient Context, or nil if none is entered (e.g. a
// background task running outside any WithContext scope).
func Current() *Context { return current }

// RootSink is called by WithContext when a Bubble-mode scope's widget has no
// enclosing ambient Context. It is set once by package app during startup
// to bridge into the real update.Service; tests may substitute a stub.
// windowRoot reports whether ctx itself had no tree parent (the bubble must
// seed the window's root-delivery list); otherwise widgetID is the deferred
// search target.
var RootSink func(windowRoot bool, windowID tree.WindowId, widgetID tree.WidgetId, flags update.Flags)

// WithContext makes ctx the ambient widget for the duration of f, then
// bubbles (or discards) any flags f newly raised on ctx, per mode.
//
// Dispatch and the update/layout/render walks always call WithContext in
// tree order — parent before children — so the "enclosing ambient Context"
// at the moment ctx's scope closes is exactly ctx's tree parent; this is
// what makes the bubble step equivalent to "merge into the parent widget's
// flags" without a separate parent registry lookup.
func WithContext(ctx *Context, mode Mode, f func()) {
	before := ctx.flagsValue()
	prev := current
	current = ctx
	f()
	current = prev

	added := ctx.flagsValue().Clear(before).Propagable()
	if added.IsEmpty() {
		return
	}

	if mode == Ignore {
		ctx.clearFlagBits(added)
		return
	}

	if prev != nil {
		prev.setFlagBits(added)
		return
	}

	if RootSink == nil {
		return
	}
	if !ctx.hasParent {
		RootSink(true, ctx.windowID, 0, added)
	} else {
		RootSink(false, ctx.windowID, ctx.id, added)
	}
}
