package update

import "github.com/arborui/arbor/event"

// EventUpdate is one delivery of one event carrying a delivery list.
// It is dispatched exactly once; PreActions run before tree
// dispatch and PostActions after, regardless of whether propagation was
// stopped partway through.
type EventUpdate struct {
	Kind event.Types
	Args event.Event
	Delivery *DeliveryList

	PreActions []func()
	PostActions []func()
}

// NewEventUpdate builds an EventUpdate ready for the scheduler's dispatch
// protocol.
func NewEventUpdate(args event.Event, delivery *DeliveryList) *EventUpdate {
	if delivery == nil {
		delivery = NewAny()
	}
	return &EventUpdate{Kind: args.Type(), Args: args, Delivery: delivery}
}

// runActions drains and invokes fns. Draining first (rather than ranging
// over the live slice) matches the "drain-to-vec then invoke" rule: actions
// registered during this very call run on the *next* iteration, never
// re-entrantly in this one.
func runActions(fns *[]func()) {
	taken := *fns
	*fns = nil
	for _, f := range taken {
		f()
	}
}

// CallPreActions runs PreActions once, draining them atomically first.
func (eu *EventUpdate) CallPreActions() { runActions(&eu.PreActions) }

// CallPostActions runs PostActions once, draining them atomically first.
func (eu *EventUpdate) CallPostActions() { runActions(&eu.PostActions) }
