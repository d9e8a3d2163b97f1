// Package update implements the per-widget update flag machine, the
// delivery-list computation that routes events and update requests to the
// smallest sufficient set of widgets, and the process-wide aggregator
// (Service) that ties widget-level requests into the phases the scheduler
// runs each iteration.
package update

// Flags is the 6-bit set of pending work a widget can request: UPDATE,
// LAYOUT, RENDER, RENDER_UPDATE, INFO, and the self-targeted REINIT.
type Flags uint8

const (
	// UPDATE requests the widget's update method run again.
	UPDATE Flags = 1 << iota
	// LAYOUT requests a new layout pass including this widget.
	LAYOUT
	// RENDER requests a full re-render of this widget.
	RENDER
	// RENDER_UPDATE requests a cheaper render-data-only update, superseded
	// by RENDER when both are outstanding in the same window.
	RENDER_UPDATE
	// INFO requests the window's widget info tree be rebuilt.
	INFO
	_reserved5
	_reserved6
	// REINIT is a self-targeted signal: the widget must be torn down and
	// reconstructed the next time one of its own init/deinit/event/update
	// methods runs. It never propagates to ancestors.
	REINIT Flags = 1 << 7
)

// propagable is the subset of flags that bubble to ancestors.
const propagable = UPDATE | LAYOUT | RENDER | RENDER_UPDATE | INFO

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Any reports whether any bit in want is set in f.
func (f Flags) Any(want Flags) bool { return f&want != 0 }

// Set returns f with want's bits set.
func (f Flags) Set(want Flags) Flags { return f | want }

// Clear returns f with want's bits cleared.
func (f Flags) Clear(want Flags) Flags { return f &^ want }

// Propagable returns only the bits of f that bubble to a parent widget,
// dropping REINIT.
func (f Flags) Propagable() Flags { return f & propagable }

// IsEmpty reports whether no bits are set.
func (f Flags) IsEmpty() bool { return f == 0 }

// ResolveRender applies the invariant — "RENDER supersedes
// RENDER_UPDATE: if both are requested in the same window, RENDER wins
// during aggregation" — at the window level: given the union of flags
// requested by every widget in one window during one iteration, it reports
// which single render kind the window should actually perform.
func ResolveRender(windowUnion Flags) (render, renderUpdate bool) {
	if windowUnion.Has(RENDER) {
		return true, false
	}
	return false, windowUnion.Has(RENDER_UPDATE)
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	add := func(bit Flags, name string) {
		if f.Has(bit) {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(UPDATE, "UPDATE")
	add(LAYOUT, "LAYOUT")
	add(RENDER, "RENDER")
	add(RENDER_UPDATE, "RENDER_UPDATE")
	add(INFO, "INFO")
	add(REINIT, "REINIT")
	return s
}
