package widget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
	"github.com/arborui/arbor/widget"
)

// Testable property 2, "Bubble completeness": a Bubble-mode WithContext OR-
// merges the child's propagable flags into the enclosing (parent) widget.
func TestWithContextBubbleMergesIntoParent(t *testing.T) {
	parent := widget.New(1, 1, "parent")
	child := widget.NewChild(2, parent, "child")

	parent.Update() // parent's prior flags

	widget.WithContext(parent, widget.Bubble, func() {
			widget.WithContext(child, widget.Bubble, func() {
					child.Layout()
					child.Render()
				})
		})

	flags := parent.FlagsSnapshot()
	assert.True(t, flags.Has(update.UPDATE), "parent's prior flags must survive")
	assert.True(t, flags.Has(update.LAYOUT), "child's LAYOUT must bubble")
	assert.True(t, flags.Has(update.RENDER), "child's RENDER must bubble")
}

// REINIT never propagates even in Bubble mode.
func TestWithContextBubbleDoesNotPropagateReinit(t *testing.T) {
	parent := widget.New(1, 1, "parent")
	child := widget.NewChild(2, parent, "child")

	widget.WithContext(parent, widget.Bubble, func() {
			widget.WithContext(child, widget.Bubble, func() {
					child.Reinit()
				})
		})

	assert.False(t, parent.FlagsSnapshot().Has(update.REINIT))
	assert.True(t, child.TakeReinit(), "child keeps its own REINIT")
}

// Ignore-mode scopes discard everything raised during f (measure passes).
func TestWithContextIgnoreDiscardsFlags(t *testing.T) {
	parent := widget.New(1, 1, "parent")
	child := widget.NewChild(2, parent, "child")

	widget.WithContext(parent, widget.Bubble, func() {
			widget.WithContext(child, widget.Ignore, func() {
					child.Layout()
					child.Render()
				})
		})

	assert.True(t, parent.FlagsSnapshot().IsEmpty())
	assert.True(t, child.FlagsSnapshot().IsEmpty(), "Ignore clears the child's own flags too")
}

// At window root (no enclosing ambient Context), a Bubble scope's flags go
// to RootSink instead of a parent, seeding the window's root-delivery list.
func TestWithContextBubbleAtWindowRootCallsRootSink(t *testing.T) {
	root := widget.New(1, 7, "root")

	var gotWindowRoot bool
	var gotWin tree.WindowId
	var gotFlags update.Flags
	prev := widget.RootSink
	widget.RootSink = func(windowRoot bool, win tree.WindowId, id tree.WidgetId, flags update.Flags) {
		gotWindowRoot, gotWin, gotFlags = windowRoot, win, flags
	}
	defer func() { widget.RootSink = prev }()

	widget.WithContext(root, widget.Bubble, func() {
			root.Update()
		})

	require.True(t, gotWindowRoot)
	assert.Equal(t, tree.WindowId(7), gotWin)
	assert.True(t, gotFlags.Has(update.UPDATE))
}

// A widget with a tree parent, but entered standalone (no ambient Context at
// scope entry), bubbles targeted at itself via the deferred-search path.
func TestWithContextBubbleStandaloneNonRootTargetsSelf(t *testing.T) {
	parent := widget.New(1, 1, "parent")
	child := widget.NewChild(2, parent, "child")

	var gotWindowRoot bool
	var gotId tree.WidgetId
	prev := widget.RootSink
	widget.RootSink = func(windowRoot bool, win tree.WindowId, id tree.WidgetId, flags update.Flags) {
		gotWindowRoot, gotId = windowRoot, id
	}
	defer func() { widget.RootSink = prev }()

	widget.WithContext(child, widget.Bubble, func() {
			child.Update()
		})

	require.False(t, gotWindowRoot)
	assert.Equal(t, tree.WidgetId(2), gotId)
}

// S3 "Reinit during event": a widget that calls reinit during its own
// event handler is reinitialized (flags and state wiped, subscriptions
// dropped) before any later phase observes it, and a later Update against
// the same Context runs clean against the fresh instance.
func TestReinitDuringEventClearsStateBeforeNextUpdate(t *testing.T) {
	c := widget.New(3, 1, "C")
	widget.SetState(c, "count", 41)

	c.Reinit() // as if raised inside the event handler

	// the dispatcher (out of scope here) would call these two in order
	// immediately after the handler returns, before post-event processing:
	require.True(t, c.TakeReinit())
	c.Deinit()

	_, ok := widget.GetState[int](c, "count")
	assert.False(t, ok, "state must not survive a reinit")

	c.Update()
	assert.True(t, c.FlagsSnapshot().Has(update.UPDATE), "update against the fresh instance still works")
}

func TestSubVarReleasedOnDeinitStopsFiring(t *testing.T) {
	c := widget.New(4, 1, "D")
	v := &fakeVar[int]{}
	widget.SubVar(c, v)

	v.set(1)
	assert.True(t, c.FlagsSnapshot().Has(update.UPDATE))

	c.Deinit()
	v.set(2)
	assert.False(t, c.FlagsSnapshot().Has(update.UPDATE), "deinit must release the subscription")
}

func TestSubVarWhenOnlyFiresWhenPredicateAccepts(t *testing.T) {
	c := widget.New(5, 1, "E")
	v := &fakeVar[int]{}
	widget.SubVarWhen(c, v, update.OpLayout, func(n int) bool { return n > 10 })

	v.set(1)
	assert.False(t, c.FlagsSnapshot().Has(update.LAYOUT))

	v.set(11)
	assert.True(t, c.FlagsSnapshot().Has(update.LAYOUT))
}

func TestInitStateRunsInitOnlyOnce(t *testing.T) {
	c := widget.New(6, 1, "F")
	calls := 0
	init := func() int { calls++; return 7 }

	first := widget.InitState(c, "k", init)
	second := widget.InitState(c, "k", init)

	assert.Equal(t, 7, first)
	assert.Equal(t, 7, second)
	assert.Equal(t, 1, calls)
}

// fakeVar is a minimal widget.Variable[T] test double.
type fakeVar[T any] struct {
	handlers []func(T)
}

func (v *fakeVar[T]) Get() T { var zero T; return zero }

func (v *fakeVar[T]) Subscribe(h func(T)) func() {
	v.handlers = append(v.handlers, h)
	idx := len(v.handlers) - 1
	return func() { v.handlers[idx] = nil }
}

func (v *fakeVar[T]) set(val T) {
	for _, h := range v.handlers {
		if h != nil {
			h(val)
		}
	}
}
