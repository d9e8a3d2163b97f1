// Package viewproc implements ViewController/ViewProcessService: the typed
// request/response and event-stream channel to the out-of-process view, its
// generation/respawn state machine, and the id-map bookkeeping that gets
// reset on every respawn.
package viewproc

import "sync/atomic"

// WindowId, InputDeviceId, MonitorId, DragDropId, ImageId, AudioId,
// FrameId, ImageEncodeId and AxisId are unsigned id spaces minted by the
// view process; 0 is INVALID and next wraps skipping zero ("Id spaces").
type (
	WindowId uint64
	InputDeviceId uint64
	MonitorId uint64
	DragDropId uint64
	ImageId uint64
	AudioId uint64
	FrameId uint64
	ImageEncodeId uint64
	AxisId uint64
	ViewProcessGen uint32
)

// Invalid is the zero value shared by every id space above.
const Invalid = 0

// InvalidGen is the sentinel "no view process connected yet" generation.
const InvalidGen ViewProcessGen = 0

// idCounter mints process-local ids of one of the spaces above, wrapping
// around before reaching zero so Invalid is never handed out.
type idCounter struct {
	n atomic.Uint64
}

func (c *idCounter) next() uint64 {
	for {
		v := c.n.Add(1)
		if v != 0 {
			return v
		}
		// wrapped exactly onto zero: skip it by looping once more.
	}
}
