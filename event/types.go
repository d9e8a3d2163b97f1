// Package event defines the GUI event kinds dispatched through the widget
// tree, and the per-widget listener lists that observe them, narrowed to
// the kinds the update/delivery engine itself must name; concrete widgets
// are expected to define further application-level event types the same
// way.
package event

import "github.com/arborui/arbor/tree"

// Types enumerates the event kinds the core dispatches. Most events reuse
// Base and differ only in which fields they populate and which Types value
// they carry.
type Types int32

const (
	// Unknown is the zero value, never sent.
	Unknown Types = iota

	// MouseMove is sent on pointer motion with no button held.
	MouseMove
	// MouseDown is sent when a pointer button is pressed.
	MouseDown
	// MouseUp is sent when a pointer button is released.
	MouseUp
	// Click is the synthetic MouseDown+MouseUp-on-same-widget event.
	Click

	// KeyDown is sent on a physical key press.
	KeyDown
	// KeyUp is sent on a physical key release.
	KeyUp
	// KeyChord is sent for a recognized modifier+key combination.
	KeyChord

	// Focus is sent to a widget that has gained keyboard focus.
	Focus
	// FocusLost is sent to a widget that has lost keyboard focus.
	FocusLost

	// WindowClose is sent when a window's close has been requested.
	WindowClose
	// WindowResize is sent after a window's size changed.
	WindowResize

	// Custom is the first value application code may use for its own event
	// kinds; concrete widgets extend Types starting here.
	Custom = 1000
)

// Event is the interface every dispatched value implements. HasPos/
// NeedsFocus direct the event manager to the right routing path, and
// IsHandled/SetHandled implement per-event propagation stop.
type Event interface {
	// Type returns this event's kind.
	Type() Types
	// HasPos reports whether this event carries a pointer position and
	// should be routed by widget hit-testing.
	HasPos() bool
	// NeedsFocus reports whether this event should be routed to the
	// currently focused widget rather than by position.
	NeedsFocus() bool
	// IsHandled reports whether a prior listener has stopped propagation.
	IsHandled() bool
	// SetHandled stops propagation.
	SetHandled()
	// Target is the widget this event was generated for or delivered to,
	// when known in advance (e.g. a keyboard event routed to focus).
	Target() (tree.WidgetId, bool)
}

// Base is the common implementation embedded by concrete event types, such
// as a MouseEvent or KeyEvent.
type Base struct {
	Typ Types
	handled bool
	target tree.WidgetId
	hasTarget bool
}

func (b *Base) Type() Types { return b.Typ }
func (b *Base) HasPos() bool { return false }
func (b *Base) NeedsFocus() bool { return false }
func (b *Base) IsHandled() bool { return b.handled }
func (b *Base) SetHandled() { b.handled = true }

func (b *Base) Target() (tree.WidgetId, bool) { return b.target, b.hasTarget }

// SetTarget records the widget this event is routed to.
func (b *Base) SetTarget(id tree.WidgetId) {
	b.target = id
	b.hasTarget = true
}
