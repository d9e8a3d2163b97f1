package event

import "sync"

// Coalescer reports whether a newly arrived event should replace the last
// queued event rather than being appended; a replaced tail is simply
// overwritten by the newer event. This mirrors the view
// process's own back-to-back merging of MouseMoved, DragMoved, and
// MouseWheel (same window/device/phase), applied here on the app side of
// the buffer as well.
type Coalescer interface {
	// Coalesce reports whether next can replace last in the queue.
	Coalesce(last, next Event) bool
}

// Queue is an unbounded FIFO of pending events with optional coalescing of
// back-to-back same-kind events: a mutex-guarded slice rather than a
// channel, because the scheduler needs to peek/drain in batches rather than
// receive one at a time.
type Queue struct {
	mu sync.Mutex
	items []Event
	coalesce Coalescer
	closed bool
}

// NewQueue creates an empty Queue. coalesce may be nil to disable
// compression entirely.
func NewQueue(coalesce Coalescer) *Queue {
	return &Queue{coalesce: coalesce}
}

// Push enqueues e, replacing the current tail in place if the configured
// Coalescer approves, otherwise appending.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if q.coalesce != nil && len(q.items) > 0 {
		last := q.items[len(q.items)-1]
		if q.coalesce.Coalesce(last, e) {
			q.items[len(q.items)-1] = e
			return
		}
	}
	q.items = append(q.items, e)
}

// DrainAll removes and returns every currently queued event, in FIFO order.
// The scheduler calls this once per iteration, so draining is always a batch operation, never a
// one-at-a-time channel receive.
func (q *Queue) DrainAll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of currently queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue as no longer accepting new events; further Push
// calls are silently dropped. Used when a window closes mid-iteration.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}
