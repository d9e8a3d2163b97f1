package trace_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborui/arbor/trace"
)

func TestRecorderTopOrdersByFrequency(t *testing.T) {
	rec := trace.NewRecorder()
	rec.Record(trace.Origin{Tag: "a"}, trace.ActionRender)
	rec.Record(trace.Origin{Tag: "a"}, trace.ActionRender)
	rec.Record(trace.Origin{Tag: "b"}, trace.ActionLayout)

	top := rec.Top(10)
	if assert.Len(t, top, 2) {
		assert.Equal(t, 2, top[0].Count)
		assert.Equal(t, "a", top[0].Origin.Tag)
		assert.Equal(t, 1, top[1].Count)
	}
}

func TestRecorderTopRespectsLimit(t *testing.T) {
	rec := trace.NewRecorder()
	rec.Record(trace.Origin{Tag: "a"}, trace.ActionRender)
	rec.Record(trace.Origin{Tag: "b"}, trace.ActionLayout)
	rec.Record(trace.Origin{Tag: "c"}, trace.ActionInfo)

	assert.Len(t, rec.Top(2), 2)
}

func TestHandlerRecordsOnlyTracedTarget(t *testing.T) {
	rec := trace.NewRecorder()
	h := trace.NewHandler(rec, nil)
	logger := trace.Logger(h)

	logger.Debug("update requested",
		"window", 7, "widget", 42, "ext", "focus", "parent", "Stack", "tag", "click",
		"action", string(trace.ActionUpdate))

	// Untraced line: no target attribute, must not pollute the histogram.
	slog.New(h).Debug("unrelated log line", "action", string(trace.ActionRender))

	top := rec.Top(10)
	if assert.Len(t, top, 1) {
		assert.Equal(t, trace.ActionUpdate, top[0].Action)
		assert.EqualValues(t, 7, top[0].Origin.Window)
		assert.EqualValues(t, 42, top[0].Origin.Widget)
		assert.Equal(t, "focus", top[0].Origin.Ext)
	}
}

func TestHandlerForwardsToNext(t *testing.T) {
	rec := trace.NewRecorder()
	next := &countingHandler{}
	h := trace.NewHandler(rec, next)
	logger := trace.Logger(h)

	logger.Debug("x", "action", string(trace.ActionInfo))

	assert.Equal(t, 1, next.n)
}

// countingHandler is a minimal slog.Handler that only counts Handle calls,
// used to verify Handler's pass-through behavior.
type countingHandler struct{ n int }

func (c *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (c *countingHandler) Handle(context.Context, slog.Record) error {
	c.n++
	return nil
}

func (c *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *countingHandler) WithGroup(string) slog.Handler { return c }
