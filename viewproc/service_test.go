package viewproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/viewproc"
)

type fakeResettable struct{ resets int }

func (f *fakeResettable) ResetOnRespawn() { f.resets++ }

// Testable property 10: across any generation bump, the device and monitor
// id maps are empty, and every registered Resettable observes exactly one
// reset.
func TestGenerationBumpResetsIdMapsAndRegisteredState(t *testing.T) {
	svc := viewproc.NewService()
	r := &fakeResettable{}
	svc.Register(r)

	svc.MapInputDevice(100, 7)
	svc.MapMonitor(200, 9)

	svc.HandleInited(viewproc.Inited{Gen: 1, IsRespawn: false})
	_, ok := svc.InputDevice(100)
	assert.False(t, ok, "id maps must be cleared on the first generation assignment too")
	assert.Equal(t, 1, r.resets)

	svc.MapInputDevice(100, 7)
	svc.HandleInited(viewproc.Inited{Gen: 2, IsRespawn: true})

	_, ok = svc.InputDevice(100)
	assert.False(t, ok)
	_, ok = svc.Monitor(200)
	assert.False(t, ok)
	assert.Equal(t, 2, r.resets)
}

// Testable property 9 (respawn response), the id-map half: re-Inited with
// the same generation (a duplicate/retransmitted event) is a no-op.
func TestHandleInitedSameGenerationIsNoOp(t *testing.T) {
	svc := viewproc.NewService()
	r := &fakeResettable{}
	svc.Register(r)

	svc.HandleInited(viewproc.Inited{Gen: 1, IsRespawn: false})
	require.Equal(t, 1, r.resets)

	svc.HandleInited(viewproc.Inited{Gen: 1, IsRespawn: false})
	assert.Equal(t, 1, r.resets, "re-announcing the same generation must not reset again")
}

func TestPingPongMismatchIsDiagnosticOnly(t *testing.T) {
	svc := viewproc.NewService()
	req, want := svc.NextPing()
	assert.Equal(t, viewproc.OpPing, req.Op)

	svc.CheckPong(want, want+1) // must not panic; purely logs
}

func TestPendingFramesCounter(t *testing.T) {
	svc := viewproc.NewService()
	win := viewproc.WindowId(1)

	assert.Equal(t, 1, svc.IncPendingFrames(win))
	assert.Equal(t, 2, svc.IncPendingFrames(win))
	assert.Equal(t, 1, svc.DecPendingFrames(win))
	assert.Equal(t, 1, svc.PendingFrames(win))

	assert.Equal(t, 0, svc.DecPendingFrames(viewproc.WindowId(99)), "decrementing an unseen window floors at zero")
}
