// Package app provides the top-level wiring: a header-like object (APP)
// that provides the current process id and scope. It constructs and owns
// the per-process singletons (update.Service, viewproc.Service, the
// scheduler.Loop, resource.Tracker, dialog.Registry) and exposes an explicit init/exit lifecycle so nothing is
// truly global across tests: a single owning App struct with a
// package-level current-app accessor, generalized from a GUI toolkit's
// widget-facing App to this module's headless engine core.
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/arborui/arbor/dialog"
	"github.com/arborui/arbor/resource"
	"github.com/arborui/arbor/scheduler"
	"github.com/arborui/arbor/trace"
	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
	"github.com/arborui/arbor/viewproc"
	"github.com/arborui/arbor/viewproc/wire"
	"github.com/arborui/arbor/widget"
)

// Options configures a new App. No CLI or config-file layer is in scope
// here, so these are plain struct-literal fields, not a parsed config file
// or flag set.
type Options struct {
	// Policy selects which phases may run in parallel across independent
	// windows.
	Policy scheduler.ParallelWin

	// RenderEvery/RenderBurst configure the RenderPacer's per-window
	// render-phase admission rate (DESIGN.md's resolution of the
	// pending_frames back-pressure open question). Zero RenderEvery
	// disables pacing (every render is admitted immediately).
	RenderEvery time.Duration
	RenderBurst int

	// Trace is carried on Options only: New does not install it in any
	// logger, and no package here logs through trace.Logger, so a Recorder
	// set here records only what a caller logs through a trace handler it
	// builds around it.
	Trace *trace.Recorder

	// WalkUpdate/WalkInfo/WalkLayout/WalkRender/WalkRenderUpdate/
	// DispatchEvent are the per-window tree-walk callbacks the Loop invokes
	// each phase. Concrete widget tree traversal is out of scope for this
	// module; a caller supplying the widget layer passes real
	// implementations here. Nil callbacks are no-ops, which is enough for
	// tests that only exercise flag/delivery bookkeeping.
	WalkUpdate, WalkInfo, WalkLayout, WalkRender, WalkRenderUpdate scheduler.WalkFunc
	DispatchEvent scheduler.DispatchFunc
}

// appIds mints process-local App identities, matching resource.AppId's
// uint64 id space.
var appIds atomic.Uint64

// App is the process-wide owner of every per-app singleton: the update
// aggregator, the view-process controller/service, resource tracking,
// dialog correlation, and the scheduler loop that ties them together.
type App struct {
	Id resource.AppId

	Options Options

	Updates *update.Service
	Sender *scheduler.AppEventSender
	Windows *WindowSet
	Loop *scheduler.Loop
	Pacer *scheduler.RenderPacer

	View *viewproc.Service
	Resources *resource.Tracker
	Dialogs *dialog.Registry

	conn *wire.Conn

	eventsMu sync.Mutex
	events []*update.EventUpdate
}

// New creates an App and wires its singletons together, but does not open
// any view-process connection or start the loop (call Run for that).
func New(opts Options) *App {
	id := resource.AppId(appIds.Add(1))

	sender := scheduler.NewAppEventSender()
	svc := update.NewService(sender)
	windows := NewWindowSet()
	loop := scheduler.NewLoop(svc, sender, windows, opts.Policy)

	viewSvc := viewproc.NewService()

	a := &App{
		Id: id,
		Options: opts,
		Updates: svc,
		Sender: sender,
		Windows: windows,
		Loop: loop,
		View: viewSvc,
	}
	a.Resources = resource.NewTracker(id, viewSvc, a)
	a.Dialogs = dialog.New(viewSvc, a)

	if opts.RenderEvery > 0 {
		a.Pacer = scheduler.NewRenderPacer(opts.RenderEvery, opts.RenderBurst)
	}

	a.wireWidgetSinks()
	return a
}

// wireWidgetSinks bridges widget.WithContext's Bubble mechanism and
// package widget's variable/event subscriptions into this App's real
// update.Service. Without this, every flag a widget raises — via
// WIDGET.update()/layout()/render(), SubVar, or SubEvent — is discarded by
// widget.WithContext's "RootSink == nil" / "ServiceSink != nil" guards
// instead of ever reaching the scheduler, since those two package-level
// hooks start out unset.
//
// Both hooks are process-wide package variables (the ambient widget layer
// has no per-App handle to thread through), so constructing a second App
// re-points them at the newer App; callers that run more than one App in
// the same process (tests included) must not interleave widget work across
// App instances without re-wiring.
func (a *App) wireWidgetSinks() {
	widget.RootSink = func(windowRoot bool, windowID tree.WindowId, widgetID tree.WidgetId, flags update.Flags) {
		if windowRoot {
			a.Updates.UpdateFlagsRoot(windowID, flags)
			return
		}
		lookup, _ := a.Windows.Get(windowID)
		a.Updates.UpdateFlags(lookup, widgetID, flags)
	}
	widget.ServiceSink = func(widgetID tree.WidgetId, flags update.Flags) {
		// No tree snapshot is available from a bare subscription callback,
		// so resolution defers to the search pass, same as any
		// cross-window id reference.
		a.Updates.UpdateFlags(nil, widgetID, flags)
	}
}

// Connect opens the IPC channel to the view process at url and advances the
// Controller from start/disconnected to connecting. The caller still
// awaits the eventual Inited event (read
// via Recv in the event-pump goroutine, see run.go) before the connection
// is usable.
func (a *App) Connect(url string) error {
	conn, err := wire.Dial(url)
	if err != nil {
		return err
	}
	a.conn = conn
	a.View.Controller.Connect()
	return nil
}

// Send implements resource.Sender and dialog.Sender by forwarding req to
// the view process over the current connection, stamping it with the
// Controller's current generation first. Exported so resource.Tracker and
// dialog.Registry can be constructed without importing package app
// (avoiding an import cycle), per this module's "dynamic dispatch...
// tagged abstractions" design note.
func (a *App) Send(req viewproc.Request) error {
	if a.conn == nil {
		return errors.Wrap(viewproc.ErrDisconnected, "app: no view-process connection")
	}
	req.Gen = a.View.Controller.Generation()
	return a.conn.Send(req)
}
