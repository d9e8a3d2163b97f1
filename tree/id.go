// Package tree provides the widget and window identity types and the
// parent-linked walk operations the update and delivery engine routes work
// through. It mirrors tree.Node style (NodeBase, Path,
// Continue/Break walk signals) but is narrowed to what WidgetId-keyed
// routing needs: no generic embedding machinery, no tree-edit operations.
package tree

import (
	"sync"
	"sync/atomic"
)

// WidgetId uniquely identifies a widget for the lifetime of the process.
// It is never reused, hashable, and cheap to copy.
type WidgetId uint64

// WindowId uniquely identifies a window. Unlike WidgetId, a WindowId may be
// reused once its window has closed.
type WindowId uint64

// Invalid is the zero value of both id types, never assigned to a live
// widget or window.
const Invalid = 0

var widgetCounter atomic.Uint64

// NewWidgetId allocates a fresh, never-reused WidgetId.
func NewWidgetId() WidgetId {
	return WidgetId(widgetCounter.Add(1))
}

// windowIdPool recycles WindowId values: closed window ids are pushed back
// onto a free list and handed out again before the counter advances, since
// WindowId (unlike WidgetId) may be reused after close.
type windowIdPool struct {
	mu sync.Mutex
	free []WindowId
	next uint64
}

var windowPool = windowIdPool{}

// NewWindowId allocates a WindowId, reusing one freed by ReleaseWindowId
// when available.
func NewWindowId() WindowId {
	windowPool.mu.Lock()
	defer windowPool.mu.Unlock()
	if n := len(windowPool.free); n > 0 {
		id := windowPool.free[n-1]
		windowPool.free = windowPool.free[:n-1]
		return id
	}
	windowPool.next++
	return WindowId(windowPool.next)
}

// ReleaseWindowId returns a closed window's id to the free list so it may be
// reused by a subsequently opened window.
func ReleaseWindowId(id WindowId) {
	windowPool.mu.Lock()
	defer windowPool.mu.Unlock()
	windowPool.free = append(windowPool.free, id)
}
