package event

// Listeners holds, per event Types, the ordered stack of handler functions a
// widget has registered. Functions are called in *reverse* (last-added-first)
// order so later registrations can override earlier "base" ones, and a call
// stops at the first listener that marks the event handled.
type Listeners map[Types][]func(Event)

// Add appends fun to the stack for typ; it will be called before every
// listener already registered for typ.
func (ls *Listeners) Add(typ Types, fun func(Event)) {
	if *ls == nil {
		*ls = make(Listeners)
	}
	(*ls)[typ] = append((*ls)[typ], fun)
}

// Call runs the listeners registered for e's type in reverse-registration
// order, stopping as soon as e.IsHandled.
func (ls Listeners) Call(e Event) {
	if e.IsHandled() {
		return
	}
	fns := ls[e.Type()]
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i](e)
		if e.IsHandled() {
			return
		}
	}
}

// Priority groups the three listener stacks a widget keeps (First, Normal,
// Final) matching WidgetBase.Listeners.{First,Normal,Final}, so a widget can
// register handlers that run before or after its children's own dispatch.
type Priority struct {
	First Listeners
	Normal Listeners
	Final Listeners
}

// Call runs First, then Normal, then Final, short-circuiting as soon as e is
// marked handled.
func (p *Priority) Call(e Event) {
	p.First.Call(e)
	if e.IsHandled() {
		return
	}
	p.Normal.Call(e)
	if e.IsHandled() {
		return
	}
	p.Final.Call(e)
}
