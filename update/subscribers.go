package update

import "github.com/arborui/arbor/tree"

// Subscribers is a pluggable predicate+enumeration over widget ids. Only
// widgets approved by a Subscribers source may enter a DeliveryList's
// widget set during a search pass.
type Subscribers interface {
	// Contains reports whether id is an approved delivery target.
	Contains(id tree.WidgetId) bool
	// ToSet enumerates every approved id, used by DeliveryList.SearchAll.
	// May return nil for predicate-only sources that cannot enumerate
	// (e.g. Any).
	ToSet() []tree.WidgetId
}

// anySubscribers approves every widget id; it is the default used by
// DeliveryList.New.
type anySubscribers struct{}

func (anySubscribers) Contains(tree.WidgetId) bool { return true }
func (anySubscribers) ToSet() []tree.WidgetId { return nil }

// Any approves every widget id.
func Any() Subscribers { return anySubscribers{} }

// noneSubscribers approves nothing.
type noneSubscribers struct{}

func (noneSubscribers) Contains(tree.WidgetId) bool { return false }
func (noneSubscribers) ToSet() []tree.WidgetId { return nil }

// None approves no widget id.
func None() Subscribers { return noneSubscribers{} }

// Set approves exactly the ids it contains, and can enumerate them — the
// concrete subscriber-set source for a specific event's subscriber set.
type Set map[tree.WidgetId]struct{}

// NewSet builds a Set subscribers source from the given ids.
func NewSet(ids...tree.WidgetId) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Contains(id tree.WidgetId) bool { _, ok := s[id]; return ok }

func (s Set) ToSet() []tree.WidgetId {
	out := make([]tree.WidgetId, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
