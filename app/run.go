package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arborui/arbor/scheduler"
	"github.com/arborui/arbor/tree"
	"github.com/arborui/arbor/update"
	"github.com/arborui/arbor/viewproc"
)

// orDefault returns fn if non-nil, else def.
func orDefault(fn, def scheduler.WalkFunc) scheduler.WalkFunc {
	if fn != nil {
		return fn
	}
	return def
}

// PostEvent enqueues an already-translated EventUpdate for dispatch on the
// next loop iteration. The translation from a raw viewproc.Event (e.g.
// KeyboardInput, MouseMoved) into an EventUpdate with the right delivery
// list is owned by the event/subscriber layer (package event plus the
// concrete widget layer, out of scope here); this is the
// hand-off point PostEvent gives them.
func (a *App) PostEvent(eu *update.EventUpdate) {
	a.eventsMu.Lock()
	a.events = append(a.events, eu)
	a.eventsMu.Unlock()
	a.Sender.Wake()
}

// takeEvents drains and returns the queued EventUpdates, for RunOnce.
func (a *App) takeEvents() []*update.EventUpdate {
	a.eventsMu.Lock()
	defer a.eventsMu.Unlock()
	if len(a.events) == 0 {
		return nil
	}
	out := a.events
	a.events = nil
	return out
}

// pumpViewEvents blocks reading events off the view-process connection and
// routes each to the right app-side correlation table until ctx is done or the
// connection errors. It is meant to run in its own goroutine alongside Run.
func (a *App) pumpViewEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		ev, err := a.conn.Recv()
		if err != nil {
			slog.Warn("app: view-process connection closed", "err", err)
			return
		}
		a.HandleViewEvent(ev)
	}
}

// HandleViewEvent routes one view-process event to the owning package:
// lifecycle events to View (generation/respawn bookkeeping, which in turn
// notifies resource.Tracker and dialog.Registry via Resettable), resource
// events to Resources, dialog responses to Dialogs, and frame
// acknowledgements to View's pending_frames counter.
// Anything else (input, config, monitor/device, drag&drop events) is the
// concrete widget/input layer's concern and is out of scope here; those
// kinds are silently ignored at this layer — translating them into
// EventUpdates for PostEvent is a job for that external layer, not this
// module's core.
func (a *App) HandleViewEvent(ev viewproc.Event) {
	switch e := ev.(type) {
	case viewproc.Inited:
		a.View.HandleInited(e)
	case viewproc.Disconnected:
		a.View.HandleDisconnected(e)
	case viewproc.FrameRendered:
		a.View.DecPendingFrames(e.Window)
	case viewproc.ImageMetadataLoaded:
		a.Resources.HandleImageMetadata(e.Image, e.Parent)
	case viewproc.ImageLoaded:
		a.Resources.HandleImageEvent(e.Image)
	case viewproc.ImageLoadError:
		a.Resources.HandleImageEvent(e.Image)
	case viewproc.FrameImageReady:
		a.Resources.HandleImageEvent(e.Image)
	case viewproc.AudioMetadataLoaded:
		a.Resources.HandleAudioMetadata(e.Audio, e.Parent)
	case viewproc.AudioDecoded:
		a.Resources.HandleAudioEvent(e.Audio)
	case viewproc.AudioLoadError:
		a.Resources.HandleAudioEvent(e.Audio)
	case viewproc.MsgDialogResponse:
		a.Dialogs.HandleMsgResponse(e)
	case viewproc.FileDialogResponse:
		a.Dialogs.HandleFileResponse(e)
	case viewproc.NotificationDlgResponse:
		a.Dialogs.HandleNotificationResponse(e)
	}
}

// Run drives the app loop:
// each iteration drains queued events, runs RunOnce, and parks in Sleep
// when quiescent. Run also starts the view-event pump goroutine if a
// connection is open; Run does not cancel ctx itself, the pump returns once
// ctx is done or the connection fails, and Run waits for it before returning.
func (a *App) Run(ctx context.Context) {
	var wg sync.WaitGroup
	if a.conn != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.pumpViewEvents(ctx)
		}()
	}

	// Nil callbacks default to no-ops: a caller exercising only flag/
	// delivery bookkeeping (no concrete widget layer wired in) shouldn't
	// have to supply five do-nothing functions itself.
	noopWalk := scheduler.WalkFunc(func(tree.WindowId, *update.DeliveryList) {})
	noopDispatch := scheduler.DispatchFunc(func(tree.WindowId, *update.EventUpdate) {})

	walkUpdate := orDefault(a.Options.WalkUpdate, noopWalk)
	walkInfo := orDefault(a.Options.WalkInfo, noopWalk)
	walkLayout := orDefault(a.Options.WalkLayout, noopWalk)
	walkRender := orDefault(a.Options.WalkRender, noopWalk)
	walkRenderUpdate := orDefault(a.Options.WalkRenderUpdate, noopWalk)
	dispatch := a.Options.DispatchEvent
	if dispatch == nil {
		dispatch = noopDispatch
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		default:
		}

		events := a.takeEvents()
		a.Loop.RunOnce(events, dispatch, walkUpdate, walkInfo, walkLayout, walkRender, walkRenderUpdate)

		if !a.Loop.Sleep(ctx.Done()) {
			wg.Wait()
			return
		}
	}
}
