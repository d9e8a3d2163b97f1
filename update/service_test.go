package update_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

type countingWaker struct{ n int }

func (w *countingWaker) Wake() { w.n++ }

// Testable property 5: wake coalescing while the app sleeps.
func TestWakeCoalescesWhileAsleep(t *testing.T) {
	w := &countingWaker{}
	svc := update.NewService(w)

	ft := buildChain()
	svc.Update(ft, 6, true)
	svc.Layout(ft, 6, true)
	svc.Render(ft, 6, true)

	assert.Equal(t, 1, w.n)
}

// Testable property 5: no wake while the app is awake.
func TestNoWakeWhileAwake(t *testing.T) {
	w := &countingWaker{}
	svc := update.NewService(w)
	svc.EnterAwake()

	ft := buildChain()
	svc.Update(ft, 6, true)
	svc.Render(ft, 6, true)

	assert.Equal(t, 0, w.n)
}

func TestWakeFiresAgainAfterSleepCycle(t *testing.T) {
	w := &countingWaker{}
	svc := update.NewService(w)
	ft := buildChain()

	svc.Update(ft, 6, true)
	assert.Equal(t, 1, w.n)

	svc.EnterAwake()
	taken := svc.TakePhase(update.PhaseUpdate)
	assert.True(t, taken.EnterWidget(6))

	svc.EnterAsleep()
	svc.Update(ft, 6, true)
	assert.Equal(t, 2, w.n)
}

func TestOnUpdateHandlerRunsAndCanRelease(t *testing.T) {
	svc := update.NewService(nil)
	calls := 0
	h := svc.OnUpdate(func() { calls++ })

	svc.RunPostUpdateHandlers()
	assert.Equal(t, 1, calls)

	svc.RunPostUpdateHandlers()
	assert.Equal(t, 2, calls)

	h.Release()
	svc.RunPostUpdateHandlers()
	assert.Equal(t, 2, calls, "handler must not run again after Release")
}

func TestHandlerAddedDuringRunWaitsForNextIteration(t *testing.T) {
	svc := update.NewService(nil)
	var order []string
	svc.OnUpdate(func() {
			order = append(order, "first")
			svc.OnUpdate(func() { order = append(order, "added-during-run") })
		})

	svc.RunPostUpdateHandlers()
	assert.Equal(t, []string{"first"}, order)

	svc.RunPostUpdateHandlers()
	assert.Equal(t, []string{"first", "first", "added-during-run"}, order)
}

func TestRunHnOnceRunsExactlyOnce(t *testing.T) {
	svc := update.NewService(nil)
	calls := 0
	svc.RunHnOnce(func() { calls++ })

	svc.RunPostUpdateHandlers()
	svc.RunPostUpdateHandlers()
	assert.Equal(t, 1, calls)
}

func TestUpdateFlagsRootSeedsWindowDeliveryLists(t *testing.T) {
	svc := update.NewService(nil)
	svc.UpdateFlagsRoot(1, update.LAYOUT|update.RENDER)

	layout := svc.TakePhase(update.PhaseLayout)
	assert.Contains(t, layout.Windows(), tree.WindowId(1))

	render := svc.TakePhase(update.PhaseRender)
	assert.Contains(t, render.Windows(), tree.WindowId(1))
}
