package app

import (
	"github.com/arborui/arbor/viewproc"
)

// SubmitRender issues a render (or, if update is true, render_update)
// request for win and increments its pending_frames counter. It does not
// consult the RenderPacer; RenderAdmitted reports pacing separately.
func (a *App) SubmitRender(win viewproc.WindowId, frame viewproc.FrameId, data []byte, update bool) error {
	a.View.IncPendingFrames(win)
	req := viewproc.NewRender(win, frame, data)
	if update {
		req = viewproc.NewRenderUpdate(win, frame, data)
	}
	return a.Send(req)
}

// RenderAdmitted reports whether win's RENDER phase may be entered right
// now, per the configured RenderPacer (nil Pacer always admits).
func (a *App) RenderAdmitted(win viewproc.WindowId) bool {
	if a.Pacer == nil {
		return true
	}
	return a.Pacer.Allow(uint64(win))
}
