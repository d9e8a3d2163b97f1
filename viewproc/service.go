package viewproc

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Resettable is implemented by app-side state that must be wiped on every
// generation bump: package resource's loading-image/loading-audio tracking
// vectors and package dialog's pending response tables. Monitor and
// input-device id maps are cleared on every generation change the same way.
type Resettable interface {
	ResetOnRespawn()
}

// Service is ViewProcessService: the generation/respawn state machine plus
// the id-map and counter bookkeeping that rides alongside it.
// Resource and dialog tracking vectors themselves live in their own
// packages and register here via Resettable so this package stays ignorant
// of handle/dialog internals.
type Service struct {
	Controller *Controller

	mu sync.Mutex
	inputDevices map[uint64]InputDeviceId
	monitors map[uint64]MonitorId
	pendingFrames map[WindowId]int

	pingCount atomic.Uint32
	resets []Resettable
}

// NewService creates a Service around a fresh Controller.
func NewService() *Service {
	return &Service{
		Controller: NewController(),
		inputDevices: map[uint64]InputDeviceId{},
		monitors: map[uint64]MonitorId{},
		pendingFrames: map[WindowId]int{},
	}
}

// Register adds r to the set notified on every respawn.
func (s *Service) Register(r Resettable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, r)
}

// HandleInited processes the view's Inited event: advances the Controller,
// and on a respawn (or any generation bump) clears the id maps and notifies
// every registered Resettable.
func (s *Service) HandleInited(ev Inited) {
	prevGen := s.Controller.Generation()
	s.Controller.Inited(ev.Gen, ev.IsRespawn)

	if ev.Gen == prevGen {
		return
	}
	s.mu.Lock()
	s.inputDevices = map[uint64]InputDeviceId{}
	s.monitors = map[uint64]MonitorId{}
	s.pendingFrames = map[WindowId]int{}
	resets := append([]Resettable(nil), s.resets...)
	s.mu.Unlock()

	for _, r := range resets {
		r.ResetOnRespawn()
	}
}

// HandleDisconnected advances the Controller on a Disconnected(gen) event.
func (s *Service) HandleDisconnected(ev Disconnected) {
	s.Controller.Disconnected(ev.Gen)
}

// MapInputDevice records the process-local id assigned to a view-side
// input-device id, returning it.
func (s *Service) MapInputDevice(viewSide uint64, local InputDeviceId) InputDeviceId {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputDevices[viewSide] = local
	return local
}

// InputDevice looks up a previously mapped input device.
func (s *Service) InputDevice(viewSide uint64) (InputDeviceId, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.inputDevices[viewSide]
	return id, ok
}

// MapMonitor is MapInputDevice for monitor ids.
func (s *Service) MapMonitor(viewSide uint64, local MonitorId) MonitorId {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitors[viewSide] = local
	return local
}

// Monitor looks up a previously mapped monitor.
func (s *Service) Monitor(viewSide uint64) (MonitorId, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.monitors[viewSide]
	return id, ok
}

// IncPendingFrames/DecPendingFrames track the observable (never blocking)
// pending_frames counter for win, per DESIGN.md's resolution of the
// open question.
func (s *Service) IncPendingFrames(win WindowId) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingFrames[win]++
	return s.pendingFrames[win]
}

func (s *Service) DecPendingFrames(win WindowId) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingFrames[win] > 0 {
		s.pendingFrames[win]--
	}
	return s.pendingFrames[win]
}

func (s *Service) PendingFrames(win WindowId) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingFrames[win]
}

// NextPing returns the next ping request and the counter value the caller
// should expect back in the matching pong.
func (s *Service) NextPing() (Request, uint16) {
	n := uint16(s.pingCount.Add(1))
	return NewPing(n), n
}

// CheckPong logs a warning if got doesn't match want. This is purely
// diagnostic and does not itself cause reconnection.
func (s *Service) CheckPong(want, got uint16) {
	if want != got {
		slog.Warn("viewproc: ping/pong count mismatch", "want", want, "got", got)
	}
}
