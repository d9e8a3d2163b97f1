package update

import "github.com/arborui/arbor/tree"

// DeliveryList is the set of windows, widgets, and pending searches targeted
// by one event or update request.
type DeliveryList struct {
	subscribers Subscribers

	windows map[tree.WindowId]struct{}
	widgets map[tree.WidgetId]struct{}
	search map[tree.WidgetId]struct{}

	searchRoot bool
}

// New creates a list that only allows targets subscribers approves.
func New(subscribers Subscribers) *DeliveryList {
	if subscribers == nil {
		subscribers = Any()
	}
	return &DeliveryList{
		subscribers: subscribers,
		windows: map[tree.WindowId]struct{}{},
		widgets: map[tree.WidgetId]struct{}{},
		search: map[tree.WidgetId]struct{}{},
	}
}

// NewAny creates a list that allows any widget (the default).
func NewAny() *DeliveryList { return New(Any()) }

// NewNone creates a list that allows nothing until explicitly inserted.
func NewNone() *DeliveryList { return New(None()) }

// InsertWgt walks id and its ancestors (via tree.AndAncestors) and, once an
// ancestor is approved by subscribers, inserts that ancestor and every
// further ancestor up to the root into widgets, and id's window into
// windows. This lets the dispatch walk early-out on branches whose root is
// not in widgets.
func (dl *DeliveryList) InsertWgt(t tree.Lookup, id tree.WidgetId) {
	chain := tree.AndAncestors(t, id)
	any := false
	for _, w := range chain {
		if !any && !dl.subscribers.Contains(w) {
			continue
		}
		any = true
		dl.widgets[w] = struct{}{}
	}
	if any {
		dl.windows[t.Window()] = struct{}{}
	}
}

// InsertWindow inserts id into windows and marks the window's root for
// promotion once its info tree is available.
func (dl *DeliveryList) InsertWindow(id tree.WindowId) {
	dl.windows[id] = struct{}{}
	dl.searchRoot = true
}

// SearchAll snapshots every subscriber for deferred search.
func (dl *DeliveryList) SearchAll() {
	for _, id := range dl.subscribers.ToSet() {
		dl.search[id] = struct{}{}
	}
}

// SearchWidget defers resolving id's location until FulfillSearch runs,
// provided subscribers approves it first.
func (dl *DeliveryList) SearchWidget(id tree.WidgetId) {
	if dl.subscribers.Contains(id) {
		dl.search[id] = struct{}{}
	}
}

// HasPendingSearch reports whether any target still needs to be located
// before this list is dispatchable.
func (dl *DeliveryList) HasPendingSearch() bool {
	return dl.searchRoot || len(dl.search) > 0
}

// FulfillSearch resolves every pending search entry and the deferred root
// against the given window trees. Entries not found in any tree are
// silently dropped. Idempotent: calling it
// again with the same trees leaves widgets unchanged and HasPendingSearch
// false.
func (dl *DeliveryList) FulfillSearch(trees []tree.Lookup) {
	for _, t := range trees {
		if dl.searchRoot {
			if _, inWindow := dl.windows[t.Window()]; inWindow {
				dl.widgets[t.Root().Id()] = struct{}{}
			}
		}
		for id := range dl.search {
			if _, ok := t.Get(id); !ok {
				continue
			}
			for _, w := range tree.AndAncestors(t, id) {
				dl.widgets[w] = struct{}{}
			}
			dl.windows[t.Window()] = struct{}{}
			delete(dl.search, id)
		}
	}
	// Anything left unresolved after scanning every tree is unreachable;
	// drop it rather than leaving has_pending_search stuck forever.
	dl.search = map[tree.WidgetId]struct{}{}
	dl.searchRoot = false
}

// EnterWidget reports whether id is a current delivery target. The
// scheduler calls this at each widget during tree dispatch to decide
// whether to invoke the widget's event method.
func (dl *DeliveryList) EnterWidget(id tree.WidgetId) bool {
	_, ok := dl.widgets[id]
	return ok
}

// Windows returns the set of window ids this list targets.
func (dl *DeliveryList) Windows() []tree.WindowId {
	out := make([]tree.WindowId, 0, len(dl.windows))
	for id := range dl.windows {
		out = append(out, id)
	}
	return out
}

// Widgets returns the set of resolved widget ids this list targets.
func (dl *DeliveryList) Widgets() []tree.WidgetId {
	out := make([]tree.WidgetId, 0, len(dl.widgets))
	for id := range dl.widgets {
		out = append(out, id)
	}
	return out
}

// IsEmpty reports whether this list has no resolved targets and nothing
// pending search.
func (dl *DeliveryList) IsEmpty() bool {
	return len(dl.windows) == 0 && len(dl.widgets) == 0 && !dl.HasPendingSearch()
}
