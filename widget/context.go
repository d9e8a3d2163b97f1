// Package widget implements WIDGET: the ambient per-widget state nodes use
// to request work, subscribe to variables and events, and hold typed state,
// plus the scoped WithContext entry point that makes one Context ambient
// while a closure runs and bubbles its requested flags to the enclosing
// widget.
package widget

import (
	"sync"
	"sync/atomic"

	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

// Bounds is the widget's current layout rectangle, mutated only during the
// LAYOUT phase; pixel-exact layout computation is out of scope here, this
// struct just holds its result.
type Bounds struct {
	X, Y, W, H float32
}

// Border holds the widget's current border metrics, mutated alongside
// Bounds during layout.
type Border struct {
	Left, Top, Right, Bottom float32
}

// RenderReuse is an opaque cached range a renderer may stash on a widget to
// skip re-recording draw commands when only a RENDER_UPDATE (not a full
// RENDER) was requested ("optional cached render reuse range").
// The renderer implementation that produces/consumes the Range is out of
// scope; Context only carries it.
type RenderReuse struct {
	Start, End int
}

// Context is WIDGET's backing state for one widget: the ambient per-widget
// state a node reaches through the current scope to read its id, flags,
// bounds, and subscriptions.
type Context struct {
	id tree.WidgetId
	parentID tree.WidgetId
	hasParent bool
	windowID tree.WindowId
	name string

	flags atomic.Uint32 // stores update.Flags (fits comfortably in 8 bits)

	mu sync.Mutex
	state map[any]any
	subs []func() // unsubscribe functions run on deinit

	bounds Bounds
	border Border
	reuse *RenderReuse
}

// New creates a root Context (no parent) for id in window win.
func New(id tree.WidgetId, win tree.WindowId, name string) *Context {
	return &Context{id: id, windowID: win, name: name, state: map[any]any{}}
}

// NewChild creates a Context for id whose tree parent is parent.
func NewChild(id tree.WidgetId, parent *Context, name string) *Context {
	return &Context{
		id: id, parentID: parent.id, hasParent: true,
		windowID: parent.windowID, name: name, state: map[any]any{},
	}
}

// Id returns this widget's identity (tree.Node).
func (c *Context) Id() tree.WidgetId { return c.id }

// ParentId returns the tree-parent's id (tree.Node).
func (c *Context) ParentId() (tree.WidgetId, bool) { return c.parentID, c.hasParent }

// WindowId returns the owning window (tree.Node).
func (c *Context) WindowId() tree.WindowId { return c.windowID }

// Name returns this widget's human-readable label (tree.Node).
func (c *Context) Name() string { return c.name }

// Bounds returns the widget's current layout rectangle.
func (c *Context) Bounds() Bounds { return c.bounds }

// SetBounds is called by the layout pass (out of scope here) to record the
// widget's resolved rectangle.
func (c *Context) SetBounds(b Bounds) { c.bounds = b }

// Border returns the widget's current border metrics.
func (c *Context) Border() Border { return c.border }

// SetBorder is called by the layout pass to record resolved border metrics.
func (c *Context) SetBorder(b Border) { c.border = b }

// RenderReuse returns the cached render-reuse range, if any.
func (c *Context) RenderReuse() *RenderReuse { return c.reuse }

// SetRenderReuse stashes a render-reuse range, or clears it if r is nil.
func (c *Context) SetRenderReuse(r *RenderReuse) { c.reuse = r }

// flagsValue loads the current flags.
func (c *Context) flagsValue() update.Flags { return update.Flags(c.flags.Load()) }

// FlagsSnapshot returns the widget's current flags without clearing
// anything, for callers (tests, diagnostics) that only need to observe
// state. The dispatcher consumes flags via TakeReinit and TakePhase, not
// this method.
func (c *Context) FlagsSnapshot() update.Flags { return c.flagsValue() }

// setFlagBits ORs want into the widget's own flags, usable from any
// goroutine.
func (c *Context) setFlagBits(want update.Flags) {
	for {
		old := c.flags.Load()
		nw := old | uint32(want)
		if c.flags.CompareAndSwap(old, nw) {
			return
		}
	}
}

func (c *Context) clearFlagBits(clear update.Flags) {
	for {
		old := c.flags.Load()
		nw := old &^ uint32(clear)
		if c.flags.CompareAndSwap(old, nw) {
			return
		}
	}
}

// Update sets UPDATE on this widget.
func (c *Context) Update() { c.setFlagBits(update.UPDATE) }

// UpdateInfo sets INFO on this widget.
func (c *Context) UpdateInfo() { c.setFlagBits(update.INFO) }

// Layout sets LAYOUT on this widget.
func (c *Context) Layout() { c.setFlagBits(update.LAYOUT) }

// Render sets RENDER on this widget.
func (c *Context) Render() { c.setFlagBits(update.RENDER) }

// RenderUpdate sets RENDER_UPDATE on this widget.
func (c *Context) RenderUpdate() { c.setFlagBits(update.RENDER_UPDATE) }

// Reinit sets REINIT; it never propagates.
func (c *Context) Reinit() { c.setFlagBits(update.REINIT) }

// TakeReinit reports and clears REINIT; called by the dispatcher immediately
// before running init/deinit/event/update so the widget reinits at most
// once per request.
func (c *Context) TakeReinit() bool {
	if !c.flagsValue().Has(update.REINIT) {
		return false
	}
	c.clearFlagBits(update.REINIT)
	return true
}
