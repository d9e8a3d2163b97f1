package update_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
)

// fakeNode and fakeTree are a minimal tree.Lookup for exercising DeliveryList
// without pulling in the widget package (avoiding an import cycle in tests,
// mirroring how tree package tests build a tiny testdata tree
// rather than importing core).
type fakeNode struct {
	id tree.WidgetId
	parent tree.WidgetId
	root bool
	name string
}

func (n *fakeNode) Id() tree.WidgetId { return n.id }
func (n *fakeNode) ParentId() (tree.WidgetId, bool) {
	if n.root {
		return 0, false
	}
	return n.parent, true
}
func (n *fakeNode) WindowId() tree.WindowId { return 1 }
func (n *fakeNode) Name() string { return n.name }

type fakeTree struct {
	win tree.WindowId
	nodes map[tree.WidgetId]*fakeNode
	root tree.WidgetId
}

func (t *fakeTree) Get(id tree.WidgetId) (tree.Node, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}
func (t *fakeTree) Root() tree.Node { return t.nodes[t.root] }
func (t *fakeTree) Window() tree.WindowId { return t.win }

// buildChain builds A/B/C/W/X/Y as in S6: A is root.
func buildChain() *fakeTree {
	ft := &fakeTree{win: 1, nodes: map[tree.WidgetId]*fakeNode{}, root: 1}
	ft.nodes[1] = &fakeNode{id: 1, root: true, name: "A"}
	ft.nodes[2] = &fakeNode{id: 2, parent: 1, name: "B"}
	ft.nodes[3] = &fakeNode{id: 3, parent: 2, name: "C"}
	ft.nodes[4] = &fakeNode{id: 4, parent: 3, name: "W"}
	ft.nodes[5] = &fakeNode{id: 5, parent: 4, name: "X"}
	ft.nodes[6] = &fakeNode{id: 6, parent: 5, name: "Y"}
	return ft
}

// S6 "Insert widget with subscribers filter."
func TestDeliveryListInsertWgtWithSubscriberFilter(t *testing.T) {
	ft := buildChain()
	dl := update.New(update.NewSet(4)) // subscribers = {W}
	dl.InsertWgt(ft, 6) // insert_wgt(path = A/B/C/W/X/Y)

	widgets := dl.Widgets()
	assert.ElementsMatch(t, []tree.WidgetId{4, 5, 6}, widgets)
	assert.Contains(t, dl.Windows(), tree.WindowId(1))
	assert.NotContains(t, widgets, tree.WidgetId(1))
	assert.NotContains(t, widgets, tree.WidgetId(2))
	assert.NotContains(t, widgets, tree.WidgetId(3))
}

// No widget in the subscribers set on the path: nothing is inserted.
func TestDeliveryListInsertWgtNoMatch(t *testing.T) {
	ft := buildChain()
	dl := update.New(update.NewSet(999))
	dl.InsertWgt(ft, 6)
	assert.Empty(t, dl.Widgets())
	assert.Empty(t, dl.Windows())
}

// S2 "Unfound search drops silently."
func TestFulfillSearchUnfoundDropsSilently(t *testing.T) {
	ft := buildChain()
	dl := update.NewAny()
	dl.SearchWidget(0xDEAD)

	before := dl.Widgets()
	dl.FulfillSearch([]tree.Lookup{ft})

	assert.Equal(t, before, dl.Widgets())
	assert.False(t, dl.HasPendingSearch())
}

// Testable property 4: search idempotence.
func TestFulfillSearchIdempotent(t *testing.T) {
	ft := buildChain()
	dl := update.NewAny()
	dl.SearchWidget(6)

	dl.FulfillSearch([]tree.Lookup{ft})
	first := dl.Widgets()
	require.False(t, dl.HasPendingSearch())

	dl.FulfillSearch([]tree.Lookup{ft})
	second := dl.Widgets()

	assert.ElementsMatch(t, first, second)
	assert.False(t, dl.HasPendingSearch())
}

func TestFulfillSearchResolvesAncestorChain(t *testing.T) {
	ft := buildChain()
	dl := update.NewAny()
	dl.SearchWidget(6)
	dl.FulfillSearch([]tree.Lookup{ft})

	assert.ElementsMatch(t, []tree.WidgetId{1, 2, 3, 4, 5, 6}, dl.Widgets())
	assert.Contains(t, dl.Windows(), tree.WindowId(1))
}

func TestInsertWindowPromotesRootOnFulfill(t *testing.T) {
	ft := buildChain()
	dl := update.NewAny()
	dl.InsertWindow(1)
	require.True(t, dl.HasPendingSearch())

	dl.FulfillSearch([]tree.Lookup{ft})
	assert.False(t, dl.HasPendingSearch())
	assert.Contains(t, dl.Widgets(), tree.WidgetId(1))
}
