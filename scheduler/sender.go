package scheduler

import "sync/atomic"

// AppEventSender is the cloneable, Send-safe waker: any thread may enqueue
// an app event or a wake message while the scheduler sleeps. It implements
// update.Waker and additionally exposes a
// channel the Loop selects on, so a worker goroutine (a background task, a
// view-process reader) can nudge the loop awake without importing scheduler.
type AppEventSender struct {
	wake chan struct{}
	pending atomic.Bool
}

// NewAppEventSender creates a sender ready to hand to update.NewService.
func NewAppEventSender() *AppEventSender {
	return &AppEventSender{wake: make(chan struct{}, 1)}
}

// Wake enqueues a single wake signal; redundant wakes while one is already
// pending collapse into it.
func (s *AppEventSender) Wake() {
	if s.pending.CompareAndSwap(false, true) {
		s.wake <- struct{}{}
	}
}

// C returns the channel the Loop waits on. A receive does not clear the
// pending bit; Drain must be called after it so a subsequent Wake can
// enqueue again.
func (s *AppEventSender) C() <-chan struct {} {
	return s.wake
}

// Drain clears the pending bit after the Loop has consumed a wake signal
// from C, allowing the next Wake call to re-arm.
func (s *AppEventSender) Drain() {
	s.pending.Store(false)
}
