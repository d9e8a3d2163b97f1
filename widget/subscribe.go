package widget

import (
	"github.com/arborui/arbor/event"
	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

// Variable is the minimal surface a widget context needs from a
// reactive-variable implementation: something that can be read and that
// calls back on change. Any concrete reactive value type satisfies this
// trivially without this package needing to depend on it.
type Variable[T any] interface {
	Get() T
	Subscribe(handler func(T)) (unsubscribe func())
}

// EventSource is the minimal surface a widget context needs from an
// event-dispatch system: register a handler for one event type and get back
// an unsubscribe func. package event's Bus satisfies this.
type EventSource interface {
	Listen(t event.Types, handler func(event.Event)) (unsubscribe func())
}

// ServiceSink is called by a live subscription (variable or event) when its
// source fires, to enqueue the corresponding UpdateOp against the owning
// widget id. It is wired once by package app to the real update.Service
// (via UpdateFlags with a nil Lookup, deferring resolution to the search
// pass, since the callback may run outside any tree walk). Tests may
// substitute a stub.
var ServiceSink func(widgetID tree.WidgetId, flags update.Flags)

func sink(id tree.WidgetId, flag update.Flags) {
	if ServiceSink != nil {
		ServiceSink(id, flag)
	}
}

// SubVar subscribes c to v, raising UPDATE on c whenever v changes. The
// subscription is released automatically when c deinitializes.
func SubVar[T any](c *Context, v Variable[T]) {
	SubVarOp(c, v, update.OpUpdate)
}

// SubVarOp is SubVar with an explicit UpdateOp in place of the UPDATE
// default.
func SubVarOp[T any](c *Context, v Variable[T], op update.Op) {
	SubVarWhen(c, v, op, func(T) bool { return true })
}

// SubVarWhen subscribes c to v but only raises op's flag when predicate
// accepts the new value.
func SubVarWhen[T any](c *Context, v Variable[T], op update.Op, predicate func(T) bool) {
	flag := op.Flag()
	unsub := v.Subscribe(func(val T) {
			if !predicate(val) {
				return
			}
			c.setFlagBits(flag)
			sink(c.id, flag)
		})
	c.addSub(unsub)
}

// SubEvent subscribes c to every event of type t delivered through src,
// raising UPDATE on c each time one arrives.
func SubEvent(c *Context, src EventSource, t event.Types) {
	unsub := src.Listen(t, func(event.Event) {
			c.setFlagBits(update.UPDATE)
			sink(c.id, update.UPDATE)
		})
	c.addSub(unsub)
}

// addSub records unsub to run when c deinitializes.
func (c *Context) addSub(unsub func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, unsub)
}

// Deinit releases every live subscription registered on c and clears its
// state map. Called by the dispatcher when the widget is removed from the
// tree or reinited.
func (c *Context) Deinit() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.state = map[any]any{}
	c.mu.Unlock()
	c.flags.Store(0)

	for _, unsub := range subs {
		if unsub != nil {
			unsub()
		}
	}
}
