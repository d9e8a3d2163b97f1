package trace

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/arborui/arbor/tree"
)

// Handler is an slog.Handler that feeds a Recorder from every record
// carrying a Target attribute, then optionally forwards the record to Next
// unchanged so tracing never displaces a program's regular log output.
type Handler struct {
	rec *Recorder
	next slog.Handler
	attrs []slog.Attr // sticky attrs from Logger.With, not carried by r.Attrs
}

// NewHandler wraps next (which may be nil to trace without any pass-through
// logging at all) with a Handler that records into rec.
func NewHandler(rec *Recorder, next slog.Handler) *Handler {
	return &Handler{rec: rec, next: next}
}

// Enabled defers to next when present; with no pass-through handler every
// level is accepted so tracing never silently misses a record due to level
// filtering it has no opinion about.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.next != nil {
		return h.next.Enabled(ctx, level)
	}
	return true
}

// Handle extracts an Origin and Action from r's attributes (keys: "target",
// "ext", "window", "widget", "parent", "tag", "action") and records them,
// then forwards r to next if set. Records missing the Target attribute or
// an Action are passed through untouched, never recorded.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var (
		o Origin
		action Action
		isTraced bool
	)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "target":
			isTraced = a.Value.String() == Target
		case "ext":
			o.Ext = a.Value.String()
		case "window":
			o.Window = tree.WindowId(parseUint(a.Value.String()))
		case "widget":
			o.Widget = tree.WidgetId(parseUint(a.Value.String()))
		case "parent":
			o.Parent = a.Value.String()
		case "tag":
			o.Tag = a.Value.String()
		case "action":
			action = Action(a.Value.String())
		}
		return true
	}
	// Sticky attrs added via Logger.With (e.g. the Target attribute Logger
	// pre-populates) live on the handler, not on the record, so they must
	// be folded in first; per-call attrs on r can still override them.
	for _, a := range h.attrs {
		apply(a)
	}
	r.Attrs(apply)
	if isTraced && action != "" {
		h.rec.Record(o, action)
	}
	if h.next != nil {
		return h.next.Handle(ctx, r)
	}
	return nil
}

// WithAttrs returns a new Handler that still records into the same
// Recorder, with attrs folded into next (if set) the way any slog.Handler
// wrapper preserves group/attr context across a With call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.next
	if next != nil {
		next = next.WithAttrs(attrs)
	}
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &Handler{rec: h.rec, next: next, attrs: merged}
}

// WithGroup is WithAttrs' counterpart for Logger.WithGroup. This package
// never nests attrs under a group name in practice (Logger only calls
// With), so group naming is forwarded to next for formatting purposes but
// otherwise has no effect on which attrs Handle recognizes.
func (h *Handler) WithGroup(name string) slog.Handler {
	next := h.next
	if next != nil {
		next = next.WithGroup(name)
	}
	return &Handler{rec: h.rec, next: next, attrs: h.attrs}
}

// Logger builds a *slog.Logger pre-populated with the Target attribute, so
// call sites only need to add the (ext, window, widget, parent, tag,
// action) fields: trace.Logger(h).Debug("update requested", "window", w,
// "widget", id, "action", trace.ActionRender...).
func Logger(h *Handler) *slog.Logger {
	return slog.New(h).With("target", Target)
}

// FormatTop renders the Recorder's n most frequent entries as a short
// human-readable table, one line per entry, most frequent first.
func FormatTop(r *Recorder, n int) string {
	entries := r.Top(n)
	if len(entries) == 0 {
		return "(no traced updates recorded)"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%6d %-14s window=%d widget=%d ext=%q parent=%q tag=%q\n",
			e.Count, e.Action, e.Origin.Window, e.Origin.Widget, e.Origin.Ext, e.Origin.Parent, e.Origin.Tag)
	}
	return b.String()
}

func parseUint(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}
