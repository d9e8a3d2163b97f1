package resource

import (
	"log/slog"
	"sync/atomic"

	"github.com/arborui/arbor/viewproc"
)

// audioData is imageData's counterpart for audio resources.
type audioData struct {
	appID AppId
	gen viewproc.ViewProcessGen
	id viewproc.AudioId

	refs atomic.Int32
	tracker *Tracker
}

// ViewAudio is ViewImage's counterpart for an audio resource loading or
// loaded in the view process.
type ViewAudio struct {
	d *audioData
}

func DummyViewAudio() ViewAudio { return ViewAudio{} }

func (h ViewAudio) IsDummy() bool { return h.d == nil }

func (h ViewAudio) Id() viewproc.AudioId {
	if h.d == nil {
		return viewproc.Invalid
	}
	return h.d.id
}

func (h ViewAudio) AppId() (AppId, bool) {
	if h.d == nil {
		return 0, false
	}
	return h.d.appID, true
}

func (h ViewAudio) Generation() viewproc.ViewProcessGen {
	if h.d == nil {
		return viewproc.InvalidGen
	}
	return h.d.gen
}

func (h ViewAudio) Clone() ViewAudio {
	if h.d != nil {
		h.d.refs.Add(1)
	}
	return h
}

func (h ViewAudio) Weak() WeakViewAudio {
	return WeakViewAudio{d: h.d}
}

// Release is ViewImage.Release's counterpart, sending forget_audio.
func (h *ViewAudio) Release() {
	if h.d == nil {
		return
	}
	d := h.d
	h.d = nil
	if d.refs.Add(-1) != 0 {
		return
	}
	if d.appID != d.tracker.appID {
		slog.Error("resource: view audio released by a different app than created it", "audio", d.id, "created_app", d.appID, "releasing_app", d.tracker.appID)
		return
	}
	if d.tracker.currentGen() != d.gen {
		return
	}
	if err := d.tracker.send.Send(viewproc.NewForgetAudio(d.id)); err != nil {
		slog.Warn("resource: forget_audio failed", "audio", d.id, "err", err)
	}
}

// WeakViewAudio is WeakViewImage's counterpart for audio resources.
type WeakViewAudio struct {
	d *audioData
}

func (w WeakViewAudio) Upgrade() (ViewAudio, bool) {
	if w.d == nil {
		return ViewAudio{}, false
	}
	for {
		cur := w.d.refs.Load()
		if cur <= 0 {
			return ViewAudio{}, false
		}
		if w.d.refs.CompareAndSwap(cur, cur+1) {
			return ViewAudio{d: w.d}, true
		}
	}
}
