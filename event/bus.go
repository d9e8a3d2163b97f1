package event

import "sync"

// entry is one registered Bus handler; alive lets Unlisten take effect
// lazily on the next Dispatch, the same drop-handle idiom package update
// uses for pre/post-update handlers.
type entry struct {
	fn func(Event)
	alive *bool
}

// Bus is a removable-subscription event dispatcher: unlike Listeners (which
// is built for a widget's own fixed First/Normal/Final stacks), Bus supports
// releasing a single subscription individually when the subscribing widget
// deinitializes.
type Bus struct {
	mu sync.Mutex
	byTyp map[Types][]*entry
}

// Listen registers fn for every event of type t and returns a func that
// unregisters it. Safe to call Listen/Dispatch/the returned unsubscribe func()
// from different goroutines.
func (b *Bus) Listen(t Types, fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.byTyp == nil {
		b.byTyp = make(map[Types][]*entry)
	}
	alive := true
	e := &entry{fn: fn, alive: &alive}
	b.byTyp[t] = append(b.byTyp[t], e)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		*e.alive = false
	}
}

// Dispatch calls every live handler registered for e's type, in registration
// order, stopping early if e becomes handled, and sweeps dead entries.
func (b *Bus) Dispatch(e Event) {
	b.mu.Lock()
	fns := append([]*entry(nil), b.byTyp[e.Type()]...)
	b.mu.Unlock()

	for _, ent := range fns {
		b.mu.Lock()
		alive := *ent.alive
		b.mu.Unlock()
		if !alive || e.IsHandled() {
			continue
		}
		ent.fn(e)
	}

	b.mu.Lock()
	if cur, ok := b.byTyp[e.Type()]; ok {
		live := cur[:0]
		for _, ent := range cur {
			if *ent.alive {
				live = append(live, ent)
			}
		}
		b.byTyp[e.Type()] = live
	}
	b.mu.Unlock()
}
