// Package scheduler implements the app loop: the single-threaded driver
// that orders event, update, info, layout and render phases each
// iteration, sleeps when quiescent, and wakes on the earliest of a timer
// deadline, an animation tick, or an external wake.
package scheduler

import "time"

// LoopTimer tracks the next deadline the loop should wake for even with no
// external event: the earliest of any registered one-shot timer or
// in-progress animation tick. Callers register deadlines with Register;
// Loop.Sleep reads Deadline and calls Clear once that deadline's timer fires.
type LoopTimer struct {
	deadline time.Time
	has bool
}

// Register moves the tracked deadline earlier if at is sooner than whatever
// is currently tracked (or nothing is tracked yet).
func (t *LoopTimer) Register(at time.Time) {
	if !t.has || at.Before(t.deadline) {
		t.deadline = at
		t.has = true
	}
}

// Deadline returns the next tracked wake time and whether one is set.
func (t *LoopTimer) Deadline() (time.Time, bool) {
	return t.deadline, t.has
}

// Elapsed reports whether the tracked deadline has passed, clearing it if
// so (the caller is expected to run timer/animation updates immediately
// after observing true).
func (t *LoopTimer) Elapsed(now time.Time) bool {
	if !t.has || now.Before(t.deadline) {
		return false
	}
	t.has = false
	return true
}

// Clear discards the tracked deadline without considering it elapsed;
// Loop.Sleep calls it after waking because the deadline's timer fired.
func (t *LoopTimer) Clear() { t.has = false }
