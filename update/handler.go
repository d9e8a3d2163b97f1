package update

import "sync/atomic"

// handlerSeq is the process-wide monotonic counter backing each Handler's
// Count, matching the "each carries a monotonically increasing
// count."
var handlerSeq atomic.Uint64

// Handle is returned by Service.OnPreUpdate/OnUpdate. Dropping interest in
// the handler is done by calling Release, which is the Go analogue of the
// WeakHandle going out of scope; the handler is then removed
// lazily the next time its list is swept.
type Handle struct {
	alive *atomic.Bool
}

// Release marks the handler dead; it will be dropped from its list on the
// next sweep and will not run again.
func (h Handle) Release() {
	if h.alive != nil {
		h.alive.Store(false)
	}
}

// handler is one registered pre/post-update callback.
type handler struct {
	count uint64
	fn func()
	alive *atomic.Bool
}

// handlerList is an ordered list of handlers that survive across phases.
// Handlers inserted during a dispatch of the list are appended to pending
// and only become visible on the next Run call.
type handlerList struct {
	items []*handler
	pending []*handler
}

// add registers fn and returns a release Handle.
func (hl *handlerList) add(fn func()) Handle {
	alive := new(atomic.Bool)
	alive.Store(true)
	h := &handler{count: handlerSeq.Add(1), fn: fn, alive: alive}
	hl.pending = append(hl.pending, h)
	return Handle{alive: alive}
}

// run executes every live handler exactly once, in registration order, then
// folds any handlers added during this run into the live list for next
// time. This is the "Retain/reorder rule": handlers are taken
// out by swap, iterated, and each retained iff its drop-handle is still
// alive.
func (hl *handlerList) run() {
	// Registrations made between the previous run and this one become live
	// now; registrations made *during* this run land in a fresh hl.pending
	// below and are left for the following call.
	taken := append(hl.items, hl.pending...)
	hl.items = nil
	hl.pending = nil

	live := taken[:0]
	for _, h := range taken {
		if !h.alive.Load() {
			continue
		}
		h.fn()
		if h.alive.Load() {
			live = append(live, h)
		}
	}
	hl.items = append(live, hl.pending...)
	hl.pending = nil
}
