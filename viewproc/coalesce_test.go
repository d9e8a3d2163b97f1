package viewproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/viewproc"
)

func TestCoalesceMergesBackToBackMouseMoved(t *testing.T) {
	events := []viewproc.Event{
		viewproc.MouseMoved{Window: 1, Device: 1, Position: [2]float32{1, 1}},
		viewproc.MouseMoved{Window: 1, Device: 1, Position: [2]float32{2, 2}},
		viewproc.MouseMoved{Window: 1, Device: 1, Position: [2]float32{3, 3}},
	}

	out := viewproc.Coalesce(events)
	require.Len(t, out, 1)
	mm := out[0].(viewproc.MouseMoved)
	assert.Equal(t, [2]float32{3, 3}, mm.Position)
	assert.Equal(t, [][2]float32{{1, 1}, {2, 2}}, mm.CoalescedPos)
}

func TestCoalesceKeepsDifferentWindowsSeparate(t *testing.T) {
	events := []viewproc.Event{
		viewproc.MouseMoved{Window: 1, Device: 1, Position: [2]float32{1, 1}},
		viewproc.MouseMoved{Window: 2, Device: 1, Position: [2]float32{9, 9}},
	}
	out := viewproc.Coalesce(events)
	assert.Len(t, out, 2)
}

func TestCoalesceCancelsFocusLostThenGainedSameWindow(t *testing.T) {
	w := viewproc.WindowId(1)
	events := []viewproc.Event{
		viewproc.FocusChanged{Prev: &w, New: nil},
		viewproc.FocusChanged{Prev: nil, New: &w},
	}
	out := viewproc.Coalesce(events)
	assert.Empty(t, out)
}

func TestCoalesceLeavesUnrelatedEventsUntouched(t *testing.T) {
	events := []viewproc.Event{
		viewproc.WindowClosed{Id: 1},
		viewproc.Suspended{},
	}
	out := viewproc.Coalesce(events)
	assert.Equal(t, events, out)
}
