package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/event"
	"github.com/arborui/arbor/scheduler"
	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

type noWindows struct{}

func (noWindows) All() []tree.Lookup { return nil }

func TestRunOnceOrdersPhasesUpdateThenInfoThenLayoutThenRender(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	loop := scheduler.NewLoop(svc, sender, noWindows{}, scheduler.None)

	svc.UpdateFlagsRoot(1, update.UPDATE|update.INFO|update.LAYOUT|update.RENDER)

	var order []string
	walk := func(name string) func(tree.WindowId, *update.DeliveryList) {
		return func(tree.WindowId, *update.DeliveryList) { order = append(order, name) }
	}

	loop.RunOnce(nil, nil,
		walk("update"), walk("info"), walk("layout"), walk("render"), walk("render_update"))

	assert.Equal(t, []string{"update", "info", "layout", "render"}, order)
}

// A phase with nothing pending is skipped entirely.
func TestRunOnceSkipsEmptyPhases(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	loop := scheduler.NewLoop(svc, sender, noWindows{}, scheduler.None)

	svc.UpdateFlagsRoot(1, update.RENDER)

	var order []string
	walk := func(name string) func(tree.WindowId, *update.DeliveryList) {
		return func(tree.WindowId, *update.DeliveryList) { order = append(order, name) }
	}

	loop.RunOnce(nil, nil,
		walk("update"), walk("info"), walk("layout"), walk("render"), walk("render_update"))

	assert.Equal(t, []string{"render"}, order)
}

func TestDispatchEventRunsPreAndPostActionsAroundDispatch(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	loop := scheduler.NewLoop(svc, sender, noWindows{}, scheduler.None)

	var order []string
	eu := update.NewEventUpdate(event.NewKey(0, 'a', 0), update.NewAny())
	eu.PreActions = append(eu.PreActions, func() { order = append(order, "pre") })
	eu.PostActions = append(eu.PostActions, func() { order = append(order, "post") })
	eu.Delivery.InsertWindow(1)

	loop.DispatchEvent(eu, func(tree.WindowId, *update.EventUpdate) {
			order = append(order, "dispatch")
		})

	assert.Equal(t, []string{"pre", "dispatch", "post"}, order)
}

// Testable property 5 (wake coalescing) observed at the Sender level: two
// Wake calls before the Loop drains collapse into one signal.
func TestSenderCollapsesRepeatedWakes(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	sender.Wake()
	sender.Wake()

	select {
	case <-sender.C():
	default:
		t.Fatal("expected one pending wake")
	}
	sender.Drain()

	select {
	case <-sender.C():
		t.Fatal("expected no second wake signal")
	default:
	}
}

func TestSleepWakesOnSenderAndReentersAwake(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	loop := scheduler.NewLoop(svc, sender, noWindows{}, scheduler.None)

	go func() {
		time.Sleep(10 * time.Millisecond)
		sender.Wake()
	}()

	woke := loop.Sleep(nil)
	require.True(t, woke)
}

func TestSleepWakesOnTimerDeadline(t *testing.T) {
	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	loop := scheduler.NewLoop(svc, sender, noWindows{}, scheduler.None)
	loop.Timer.Register(time.Now().Add(5 * time.Millisecond))

	woke := loop.Sleep(nil)
	require.True(t, woke)

	_, has := loop.Timer.Deadline()
	assert.False(t, has, "an elapsed deadline must be cleared after waking")
}
