package update

import (
	"log/slog"
	"sync"

	"github.com/arborui/arbor/tree"
)

// Waker is the minimal capability the Service needs to wake the app loop:
// a single-slot "there is work" signal. AppEventSender (package scheduler)
// implements it; tests use a trivial channel-backed stub.
type Waker interface {
	// Wake sends exactly one wake signal if none is already pending.
	Wake()
}

// Service is the process-wide aggregator of pending flags and registered
// pre/post update handlers. There is one Service
// per running app; package app creates and holds it as a process-local.
type Service struct {
	mu sync.Mutex

	ext Flags // aggregated union of outstanding non-widget-targeted work

	update *DeliveryList
	info *DeliveryList
	layout *DeliveryList
	render *DeliveryList
	renderUpdate *DeliveryList

	pre handlerList
	post handlerList

	sender Waker

	appIsAwake bool
	awakePending bool
}

// NewService creates an empty Service. sender may be nil in tests that don't
// care about wake accounting.
func NewService(sender Waker) *Service {
	return &Service{
		ext: 0,
		update: NewAny(),
		info: NewAny(),
		layout: NewAny(),
		render: NewAny(),
		renderUpdate: NewAny(),
		sender: sender,
	}
}

// wake sends exactly one wake message per empty-to-non-empty transition of
// the aggregated flags while the app sleeps. Must be called with mu held.
func (s *Service) wake() {
	if s.appIsAwake || s.awakePending {
		return
	}
	s.awakePending = true
	if s.sender != nil {
		s.sender.Wake()
	}
}

// EnterAwake is called by the scheduler when the loop stops sleeping;
// awake_pending clears.
func (s *Service) EnterAwake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appIsAwake = true
	s.awakePending = false
}

// EnterAsleep is called by the scheduler right before it parks.
func (s *Service) EnterAsleep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appIsAwake = false
}

func (s *Service) target(id tree.WidgetId, has bool, dl *DeliveryList, t tree.Lookup) {
	if !has {
		return
	}
	if t != nil {
		dl.InsertWgt(t, id)
	} else {
		// No tree snapshot available yet (e.g. widget requested an update
		// during its own construction, before it's reachable by lookup):
		// defer to the search pass, same as a cross-window id reference.
		dl.SearchWidget(id)
	}
}

// Update requests an UPDATE pass, optionally scoped to one widget located
// via t (pass a nil Lookup to defer resolution to the search pass).
func (s *Service) Update(t tree.Lookup, id tree.WidgetId, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target(id, has, s.update, t)
	s.ext = s.ext.Set(UPDATE)
	s.wake()
}

// UpdateInfo requests an INFO rebuild.
func (s *Service) UpdateInfo(t tree.Lookup, id tree.WidgetId, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target(id, has, s.info, t)
	s.ext = s.ext.Set(INFO)
	s.wake()
}

// Layout requests a LAYOUT pass.
func (s *Service) Layout(t tree.Lookup, id tree.WidgetId, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target(id, has, s.layout, t)
	s.ext = s.ext.Set(LAYOUT)
	s.wake()
}

// Render requests a full RENDER pass.
func (s *Service) Render(t tree.Lookup, id tree.WidgetId, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target(id, has, s.render, t)
	s.ext = s.ext.Set(RENDER)
	s.wake()
}

// RenderUpdate requests a cheaper RENDER_UPDATE pass.
func (s *Service) RenderUpdate(t tree.Lookup, id tree.WidgetId, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target(id, has, s.renderUpdate, t)
	s.ext = s.ext.Set(RENDER_UPDATE)
	s.wake()
}

// UpdateWindow/InfoWindow/LayoutWindow/RenderWindow/RenderUpdateWindow seed
// the window's root into the corresponding delivery list.

func (s *Service) UpdateWindow(win tree.WindowId) { s.window(s.update, win) }
func (s *Service) InfoWindow(win tree.WindowId) { s.window(s.info, win) }
func (s *Service) LayoutWindow(win tree.WindowId) { s.window(s.layout, win) }
func (s *Service) RenderWindow(win tree.WindowId) { s.window(s.render, win) }
func (s *Service) RenderUpdateWindow(win tree.WindowId) { s.window(s.renderUpdate, win) }

func (s *Service) window(dl *DeliveryList, win tree.WindowId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dl.InsertWindow(win)
	s.wake()
}

// UpdateFlags applies the bubble step: flags is the propagable union raised
// while a widget's ambient context was entered; it is merged into target's
// aggregate delivery lists directly (no further ancestor walk — the caller,
// package widget, already did that by bubbling one level at a time up to
// the point where there was no parent).
func (s *Service) UpdateFlags(t tree.Lookup, target tree.WidgetId, flags Flags) {
	flags = flags.Propagable()
	if flags.IsEmpty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if flags.Has(UPDATE) {
		s.target(target, true, s.update, t)
	}
	if flags.Has(INFO) {
		s.target(target, true, s.info, t)
	}
	if flags.Has(LAYOUT) {
		s.target(target, true, s.layout, t)
	}
	if flags.Has(RENDER) {
		s.target(target, true, s.render, t)
	}
	if flags.Has(RENDER_UPDATE) {
		s.target(target, true, s.renderUpdate, t)
	}
	s.ext = s.ext.Set(flags)
	s.wake()
}

// UpdateFlagsRoot is UpdateFlags for the case where there is no parent
// widget to bubble into: the flags are merged in directly as the
// root-delivery seed for that window, and the window itself becomes the
// target.
func (s *Service) UpdateFlagsRoot(window tree.WindowId, flags Flags) {
	flags = flags.Propagable()
	if flags.IsEmpty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if flags.Has(UPDATE) {
		s.update.InsertWindow(window)
	}
	if flags.Has(INFO) {
		s.info.InsertWindow(window)
	}
	if flags.Has(LAYOUT) {
		s.layout.InsertWindow(window)
	}
	if flags.Has(RENDER) {
		s.render.InsertWindow(window)
	}
	if flags.Has(RENDER_UPDATE) {
		s.renderUpdate.InsertWindow(window)
	}
	s.ext = s.ext.Set(flags)
	s.wake()
}

// OnPreUpdate registers h to run once every iteration before widget
// updates. Returns a Handle whose Release unsubscribes it.
func (s *Service) OnPreUpdate(h func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pre.add(h)
}

// OnUpdate registers h to run once every iteration after widget updates.
func (s *Service) OnUpdate(h func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.post.add(h)
}

// RunHnOnce schedules a one-shot handler for the next UPDATE phase.
func (s *Service) RunHnOnce(h func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var handle Handle
	wrapped := func() {
		h()
		handle.Release()
	}
	handle = s.post.add(wrapped)
}

// RunPreUpdateHandlers runs every live pre-update handler once.
func (s *Service) RunPreUpdateHandlers() {
	s.mu.Lock()
	pre := &s.pre
	s.mu.Unlock()
	pre.run()
}

// RunPostUpdateHandlers runs every live post-update handler once.
func (s *Service) RunPostUpdateHandlers() {
	s.mu.Lock()
	post := &s.post
	s.mu.Unlock()
	post.run()
}

// TakePhase atomically removes and returns the DeliveryList accumulated for
// one phase, replacing it with a fresh empty-any list so the next
// iteration's requests start clean. The scheduler calls this exactly once
// per phase per iteration.
func (s *Service) TakePhase(phase Phase) *DeliveryList {
	s.mu.Lock()
	defer s.mu.Unlock()
	var dl **DeliveryList
	switch phase {
	case PhaseUpdate:
		dl = &s.update
	case PhaseInfo:
		dl = &s.info
	case PhaseLayout:
		dl = &s.layout
	case PhaseRender:
		dl = &s.render
	case PhaseRenderUpdate:
		dl = &s.renderUpdate
	default:
		slog.Warn("update: TakePhase called with unknown phase", "phase", phase)
		return NewAny()
	}
	taken := *dl
	*dl = NewAny()
	return taken
}

// PendingExt reports the aggregated non-widget-targeted flags outstanding,
// used by the scheduler to decide whether a phase has any work at all.
func (s *Service) PendingExt() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ext
}

// ClearExt clears the aggregated ext flags the scheduler has now consumed.
func (s *Service) ClearExt(consumed Flags) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ext = s.ext.Clear(consumed)
}

// Phase names one of the five delivery-list buckets a Service tracks.
type Phase int

const (
	PhaseUpdate Phase = iota
	PhaseInfo
	PhaseLayout
	PhaseRender
	PhaseRenderUpdate
)
