package scheduler

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

// Windows gives the Loop read access to every open window's widget tree, so
// a delivery list's pending search can be fulfilled. Package app implements
// this over its live window set.
type Windows interface {
	All() []tree.Lookup
}

// WalkFunc is one phase's per-window tree-walk callback, run once for every
// window named in that phase's DeliveryList.
type WalkFunc func(tree.WindowId, *update.DeliveryList)

// DispatchFunc is one event's per-window dispatch callback.
type DispatchFunc func(tree.WindowId, *update.EventUpdate)

// Loop is the app loop: it drains external events, runs
// EVENT/UPDATE/INFO/LAYOUT/RENDER/RENDER_UPDATE in order each iteration
// (skipping phases with nothing pending), and parks when quiescent. It owns
// no window state itself — Windows and the per-phase walk callbacks are
// supplied by package app, keeping this package ignorant of widget/tree
// internals.
type Loop struct {
	Svc *update.Service
	Policy ParallelWin
	Sender *AppEventSender
	Windows Windows
	Timer LoopTimer

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewLoop wires a Loop to svc and sender; sender must be the same Waker
// passed to update.NewService so EnterAwake/EnterAsleep line up with the
// wake signals the Loop observes.
func NewLoop(svc *update.Service, sender *AppEventSender, windows Windows, policy ParallelWin) *Loop {
	return &Loop{Svc: svc, Policy: policy, Sender: sender, Windows: windows, Now: time.Now}
}

// fulfillIfPending resolves any outstanding search target in dl against
// every window's current tree before dispatch.
func (l *Loop) fulfillIfPending(dl *update.DeliveryList) {
	if dl.HasPendingSearch() {
		dl.FulfillSearch(l.Windows.All())
	}
}

// runPhase takes phase's accumulated DeliveryList, fulfills any pending
// search, and invokes walk once per window named in it, honoring the
// configured parallelism bit. Phases with nothing pending are skipped
// entirely.
func (l *Loop) runPhase(phase update.Phase, bit ParallelWin, walk func(tree.WindowId, *update.DeliveryList)) bool {
	dl := l.Svc.TakePhase(phase)
	if dl.IsEmpty() {
		return false
	}
	l.fulfillIfPending(dl)

	windows := dl.Windows()
	if l.Policy.Has(bit) && len(windows) > 1 {
		var g errgroup.Group
		for _, w := range windows {
			w := w
			g.Go(func() error {
				walk(w, dl)
				return nil
			})
		}
		_ = g.Wait() // walk never returns an error; present for errgroup's API
	} else {
		for _, w := range windows {
			walk(w, dl)
		}
	}
	return true
}

// RunUpdate runs the UPDATE phase: pre-update handlers, the per-window
// update walk, then post-update handlers, in that order regardless of
// whether any window actually had UPDATE work — handlers run every
// iteration that reaches this phase.
func (l *Loop) RunUpdate(walk func(tree.WindowId, *update.DeliveryList)) {
	l.Svc.RunPreUpdateHandlers()
	l.runPhase(update.PhaseUpdate, ParallelUpdate, walk)
	l.Svc.RunPostUpdateHandlers()
}

// RunInfo runs the INFO phase.
func (l *Loop) RunInfo(walk func(tree.WindowId, *update.DeliveryList)) bool {
	return l.runPhase(update.PhaseInfo, ParallelUpdate, walk)
}

// RunLayout runs the LAYOUT phase.
func (l *Loop) RunLayout(walk func(tree.WindowId, *update.DeliveryList)) bool {
	return l.runPhase(update.PhaseLayout, ParallelLayout, walk)
}

// RunRender runs the RENDER phase.
func (l *Loop) RunRender(walk func(tree.WindowId, *update.DeliveryList)) bool {
	return l.runPhase(update.PhaseRender, ParallelRender, walk)
}

// RunRenderUpdate runs the RENDER_UPDATE phase.
func (l *Loop) RunRenderUpdate(walk func(tree.WindowId, *update.DeliveryList)) bool {
	return l.runPhase(update.PhaseRenderUpdate, ParallelRender, walk)
}

// DispatchEvent runs the full EventUpdate protocol: pre-actions,
// pending-search fulfillment, per-window tree dispatch (in parallel if
// ParallelEvent is set), then post-actions.
func (l *Loop) DispatchEvent(eu *update.EventUpdate, dispatch func(tree.WindowId, *update.EventUpdate)) {
	eu.CallPreActions()
	l.fulfillIfPending(eu.Delivery)

	windows := eu.Delivery.Windows()
	if l.Policy.Has(ParallelEvent) && len(windows) > 1 {
		var g errgroup.Group
		for _, w := range windows {
			w := w
			g.Go(func() error {
				dispatch(w, eu)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, w := range windows {
			dispatch(w, eu)
		}
	}
	eu.CallPostActions()
}

// HasPendingWork reports whether anything needs this iteration to continue
// rather than park.
func (l *Loop) HasPendingWork() bool {
	return !l.Svc.PendingExt().IsEmpty()
}

// Sleep parks until the earliest of: the tracked LoopTimer deadline, an
// external wake via Sender, or ctxDone closing. It calls Svc.EnterAsleep()
// before parking and Svc.EnterAwake() immediately on waking, keeping the
// Service's own notion of awake/asleep in sync with the loop. Returns false
// only if ctxDone fired (caller should stop the loop).
func (l *Loop) Sleep(ctxDone <-chan struct{}) bool {
	l.Svc.EnterAsleep()
	defer l.Svc.EnterAwake()

	var timerC <-chan time.Time
	if deadline, ok := l.Timer.Deadline(); ok {
		d := deadline.Sub(l.Now())
		if d < 0 {
			d = 0
		}
		t := time.NewTimer(d)
		defer t.Stop()
		timerC = t.C
	}

	select {
	case <-ctxDone:
		return false
	case <-timerC:
		l.Timer.Clear()
		return true
	case <-l.Sender.C():
		l.Sender.Drain()
		return true
	}
}

// RunOnce runs exactly one full iteration of the loop body over the
// already-drained external events for this iteration. It does not itself
// sleep; callers decide when to call Sleep between iterations (package
// app's top-level Run loop does both).
func (l *Loop) RunOnce(events []*update.EventUpdate, dispatchEvent func(tree.WindowId, *update.EventUpdate), walkUpdate, walkInfo, walkLayout, walkRender, walkRenderUpdate func(tree.WindowId, *update.DeliveryList)) {
	for _, eu := range events {
		l.DispatchEvent(eu, dispatchEvent)
	}

	if l.HasPendingWork() {
		l.RunUpdate(walkUpdate)
		l.RunInfo(walkInfo)
	}

	renderedLayout := l.RunLayout(walkLayout)
	renderedRender := l.RunRender(walkRender)
	l.RunRenderUpdate(walkRenderUpdate)

	if renderedLayout && !renderedRender {
		slog.Debug("scheduler: layout ran with no matching render this iteration")
	}
}
