// Package trace implements optional update-origin tracing: a dedicated slog
// target that records, for every update-kind log line, a tuple of
// (AppExtension, Window, Widget, NodeParent, Tag) and the action it
// requested, aggregated into a frequency histogram whose top entries can be
// formatted for human reading. This is opt-in instrumentation, entirely
// side-effect free outside the tracing run, built on log/slog, the same
// library the rest of this module uses for every other log line (see
// DESIGN.md's stdlib-justification entry for this package).
package trace

import (
	"sort"
	"sync"

	"github.com/arborui/arbor/tree"
)

// Target is the dedicated slog source value this package's Handler looks
// for on every record (set via slog.String("target", trace.Target)), so a
// logger wired for ordinary diagnostics doesn't accidentally feed this
// package's histogram.
const Target = "arbor.update_trace"

// Action names the kind of update-origin event being traced: the flag or
// self-signal a widget requested, not the generic update.Flags bitset,
// since one log line names exactly one action even when a widget's actual
// flags accumulate several in the same call.
type Action string

const (
	ActionUpdate Action = "update"
	ActionInfo Action = "info"
	ActionLayout Action = "layout"
	ActionRender Action = "render"
	ActionRenderUpdate Action = "render_update"
	ActionReinit Action = "reinit"
)

// Origin identifies where one traced update request came from ("(AppExtension, Window, Widget, NodeParent, Tag)"). Ext and Parent
// are free-form labels (an extension name, a containing node's type name)
// rather than typed ids, since the property/widget macro layer that would
// supply strongly-typed equivalents is out of scope.
type Origin struct {
	Ext string
	Window tree.WindowId
	Widget tree.WidgetId
	Parent string
	Tag string
}

// key collapses an (Origin, Action) pair into a comparable map key for the
// histogram.
type key struct {
	origin Origin
	action Action
}

// Entry is one row of the aggregated histogram: an (Origin, Action) pair
// and how many times it has been recorded.
type Entry struct {
	Origin Origin
	Action Action
	Count int
}

// Recorder is the histogram itself: a concurrency-safe tally of (Origin,
// Action) occurrences. It holds no reference to slog; Handler (handler.go)
// is the bridge that feeds it from the log stream, keeping the aggregation
// logic testable without going through slog at all.
type Recorder struct {
	mu sync.Mutex
	counts map[key]int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: map[key]int{}}
}

// Record increments the tally for (o, a).
func (r *Recorder) Record(o Origin, a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key{origin: o, action: a}]++
}

// Top returns the n most frequent (Origin, Action) pairs, descending by
// count, ties broken by Action then Origin.Tag for a stable order.
func (r *Recorder) Top(n int) []Entry {
	r.mu.Lock()
	entries := make([]Entry, 0, len(r.counts))
	for k, c := range r.counts {
		entries = append(entries, Entry{Origin: k.origin, Action: k.action, Count: c})
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
			if entries[i].Count != entries[j].Count {
				return entries[i].Count > entries[j].Count
			}
			if entries[i].Action != entries[j].Action {
				return entries[i].Action < entries[j].Action
			}
			return entries[i].Origin.Tag < entries[j].Origin.Tag
		})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Reset clears the histogram, for reuse between separate tracing runs.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = map[key]int{}
}
