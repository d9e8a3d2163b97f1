package tree

import "strings"

// WalkDir tells a walk function whether to continue into a node's children
// or stop the walk entirely.
type WalkDir bool

const (
	// Continue tells the walker to proceed to the node's children (or
	// siblings, once children are exhausted).
	Continue WalkDir = true
	// Break stops the walk immediately.
	Break WalkDir = false
)

// Node is anything that lives in the widget tree and can be located by its
// WidgetId. Context (package widget) is the sole production implementer;
// the interface exists so tree and update can route without importing
// widget, avoiding an import cycle (update -> widget -> tree).
type Node interface {
	// Id returns this node's identity.
	Id() WidgetId
	// ParentId returns the id of this node's parent, or Invalid at a root.
	ParentId() (WidgetId, bool)
	// WindowId returns the id of the window this node belongs to.
	WindowId() WindowId
	// Name is a human-readable label, empty if unset.
	Name() string
}

// Lookup resolves a WidgetId to a Node within a tree snapshot. DeliveryList
// and the scheduler depend only on this narrow capability, never on mutable
// tree structure, so a Lookup can be backed by a live widget tree or by a
// frozen info-tree snapshot alike.
type Lookup interface {
	// Get returns the node for id, or (nil, false) if it is not present in
	// this tree (e.g. it belongs to a different window, or has not been
	// built yet).
	Get(id WidgetId) (Node, bool)
	// Root returns this tree's root node.
	Root() Node
	// Window is the id of the window this tree describes.
	Window() WindowId
}

// AndAncestors yields id, then its parent, grandparent, and so on up to
// (and including) the root, by repeated Lookup.Get calls. DeliveryList's
// InsertWgt walks this chain when it bubbles a widget-targeted flag toward
// the root.
func AndAncestors(t Lookup, id WidgetId) []WidgetId {
	var chain []WidgetId
	cur := id
	for {
		n, ok := t.Get(cur)
		if !ok {
			break
		}
		chain = append(chain, cur)
		parent, has := n.ParentId()
		if !has {
			break
		}
		cur = parent
	}
	return chain
}

// Path renders a slash-separated path from the root to id using each node's
// Name, escaping literal slashes, for debug/log output only (not used for
// lookup).
func Path(t Lookup, id WidgetId) string {
	chain := AndAncestors(t, id)
	if len(chain) == 0 {
		return ""
	}
	parts := make([]string, len(chain))
	for i, wid := range chain {
		n, ok := t.Get(wid)
		name := ""
		if ok {
			name = n.Name()
		}
		if name == "" {
			name = "_"
		}
		parts[len(chain)-1-i] = strings.ReplaceAll(name, "/", `\,`)
	}
	return "/" + strings.Join(parts, "/")
}
