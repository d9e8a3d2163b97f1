package viewproc

// Coalesce applies the event-coalescing rule to a batch of
// events about to be buffered app-side ("implementers must apply the
// coalesce rules on the app side as well when buffering"): back-to-back
// MouseMoved/MouseWheel events for the same window+device, and WindowChanged
// for the same window+cause, merge into the latest one, with MouseMoved
// additionally accumulating the dropped positions into CoalescedPos so no
// intermediate sample is silently lost. FocusChanged folds a lost-then-
// gained pair on the same window into a no-op, matching "IME preview→commit
// ... FocusChanged (lost→gained)". Every other event kind passes through
// unchanged; the full spec'd coalesce set (Touch, IME preview→commit,
// scale-factor, device/monitor snapshots, config snapshots, drag
// hovered/dropped) follows the identical same-key-merge shape and is not
// separately implemented here since this module does not model those event
// kinds concretely (they ride ExtensionEvent).
func Coalesce(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if len(out) > 0 {
			last := out[len(out)-1]
			if merged, ok := tryMerge(last, e); ok {
				if merged == nil {
					out = out[:len(out)-1] // both events cancel (focus lost→gained)
				} else {
					out[len(out)-1] = merged
				}
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func tryMerge(last, next Event) (Event, bool) {
	switch n := next.(type) {
	case MouseMoved:
		if l, ok := last.(MouseMoved); ok && l.Window == n.Window && l.Device == n.Device {
			merged := n
			merged.CoalescedPos = append(append([][2]float32{}, l.CoalescedPos...), l.Position)
			merged.CoalescedPos = append(merged.CoalescedPos, n.CoalescedPos...)
			return merged, true
		}
	case MouseWheel:
		if l, ok := last.(MouseWheel); ok && l.Window == n.Window && l.Device == n.Device && l.Phase == n.Phase {
			merged := n
			merged.Delta = [2]float32{l.Delta[0] + n.Delta[0], l.Delta[1] + n.Delta[1]}
			return merged, true
		}
	case WindowChanged:
		if l, ok := last.(WindowChanged); ok && l.Window == n.Window && l.Cause == n.Cause {
			return n, true
		}
	case FocusChanged:
		if l, ok := last.(FocusChanged); ok && l.New == nil && l.Prev != nil && n.Prev == nil && n.New != nil && *l.Prev == *n.New {
			return nil, true // lost→gained on the same window cancels out
		}
	}
	return nil, false
}
