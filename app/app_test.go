package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/app"
	"github.com/arborui/arbor/dialog"
	"github.com/arborui/arbor/viewproc"
)

type fakeSender struct{}

func (fakeSender) Send(viewproc.Request) error { return nil }

func TestNewWiresSingletons(t *testing.T) {
	a := app.New(app.Options{})
	require.NotNil(t, a.Updates)
	require.NotNil(t, a.Sender)
	require.NotNil(t, a.Windows)
	require.NotNil(t, a.Loop)
	require.NotNil(t, a.View)
	require.NotNil(t, a.Resources)
	require.NotNil(t, a.Dialogs)
	assert.Nil(t, a.Pacer, "RenderPacer only built when RenderEvery is set")
}

func TestInitExitScopesCurrent(t *testing.T) {
	_, ok := app.Current()
	assert.False(t, ok)

	a1 := app.New(app.Options{})
	scope1 := app.Init(a1)
	got, ok := app.Current()
	require.True(t, ok)
	assert.Same(t, a1, got)

	a2 := app.New(app.Options{})
	scope2 := app.Init(a2)
	got, ok = app.Current()
	require.True(t, ok)
	assert.Same(t, a2, got)

	scope2.Exit()
	got, ok = app.Current()
	require.True(t, ok)
	assert.Same(t, a1, got)

	scope1.Exit()
	_, ok = app.Current()
	assert.False(t, ok)
}

// HandleViewEvent routes lifecycle events into View's generation bookkeeping.
func TestHandleViewEventRoutesLifecycle(t *testing.T) {
	a := app.New(app.Options{})

	a.HandleViewEvent(viewproc.Inited{Gen: 1, IsRespawn: false})
	assert.Equal(t, viewproc.ViewProcessGen(1), a.View.Controller.Generation())

	a.HandleViewEvent(viewproc.Disconnected{Gen: 1})
	assert.Equal(t, viewproc.StateDisconnected, a.View.Controller.State())
}

// HandleViewEvent routes FrameRendered into the pending_frames counter
// (scenario S5).
func TestHandleViewEventDecrementsPendingFrames(t *testing.T) {
	a := app.New(app.Options{})
	a.View.IncPendingFrames(1)
	a.View.IncPendingFrames(1)
	a.View.IncPendingFrames(1)
	require.Equal(t, 3, a.View.PendingFrames(1))

	a.HandleViewEvent(viewproc.FrameRendered{Window: 1, Frame: 10})
	assert.Equal(t, 2, a.View.PendingFrames(1))
}

// Scenario S4 end to end through the app-level router: routing Inited/
// Disconnected events through HandleViewEvent (rather than calling
// a.View.HandleInited directly) still fans a respawn out to every
// registered dialog.Registry, resolving outstanding dialogs with
// ErrRespawn. This exercises the app package's event-routing glue; the
// registry uses its own fake sender here since a.New's wiring requires a
// live connection to send without error, which is outside this test's
// concern.
func TestRespawnThroughAppRouterCancelsDialogs(t *testing.T) {
	a := app.New(app.Options{})
	reg := dialog.New(a.View, fakeSender{})

	msg, err := reg.OpenMessage(1, "t", "m")
	require.NoError(t, err)

	a.HandleViewEvent(viewproc.Inited{Gen: 1, IsRespawn: false})
	a.HandleViewEvent(viewproc.Disconnected{Gen: 1})
	a.HandleViewEvent(viewproc.Inited{Gen: 2, IsRespawn: true})

	_, err = msg.Recv()
	assert.ErrorIs(t, err, dialog.ErrRespawn)
	assert.Equal(t, 0, reg.PendingCount())
}
