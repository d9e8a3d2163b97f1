package resource

import (
	"log/slog"
	"sync/atomic"

	"github.com/arborui/arbor/viewproc"
)

// imageData is the shared, reference-counted backing for a ViewImage. refs
// is the strong count; it reaching zero means the last strong handle has
// been released. There is no destructor, so the transition is driven by an
// explicit Release call instead of scope exit.
type imageData struct {
	appID AppId
	gen viewproc.ViewProcessGen
	id viewproc.ImageId

	refs atomic.Int32
	tracker *Tracker
}

// ViewImage is a handle to an image loading or loaded in the view process.
// It is shared ownership, reference-counted: the remote resource is
// released in the view process when the last strong clone of the handle
// calls Release, provided the generation still matches the current one.
type ViewImage struct {
	d *imageData
}

// DummyViewImage is always in the disconnected state.
func DummyViewImage() ViewImage { return ViewImage{} }

func (h ViewImage) IsDummy() bool { return h.d == nil }

func (h ViewImage) Id() viewproc.ImageId {
	if h.d == nil {
		return viewproc.Invalid
	}
	return h.d.id
}

func (h ViewImage) AppId() (AppId, bool) {
	if h.d == nil {
		return 0, false
	}
	return h.d.appID, true
}

func (h ViewImage) Generation() viewproc.ViewProcessGen {
	if h.d == nil {
		return viewproc.InvalidGen
	}
	return h.d.gen
}

// Clone returns a new strong handle sharing the same underlying resource,
// incrementing the strong count.
func (h ViewImage) Clone() ViewImage {
	if h.d != nil {
		h.d.refs.Add(1)
	}
	return h
}

// Weak returns a weak reference that does not keep the resource alive by
// itself.
func (h ViewImage) Weak() WeakViewImage {
	return WeakViewImage{d: h.d}
}

// Release drops this strong handle. If it was the last one and the handle's
// generation still matches the current view-process generation, a
// forget_image request is sent; if the generation has since moved on the
// release is a no-op, since the view already dropped everything from the
// old generation on respawn.
//
// Release is idempotent: calling it twice on the same ViewImage value after
// the first call is a no-op, since the receiver's own d field is cleared.
func (h *ViewImage) Release() {
	if h.d == nil {
		return
	}
	d := h.d
	h.d = nil
	if d.refs.Add(-1) != 0 {
		return
	}
	if d.appID != d.tracker.appID {
		slog.Error("resource: view image released by a different app than created it", "image", d.id, "created_app", d.appID, "releasing_app", d.tracker.appID)
		return
	}
	if d.tracker.currentGen() != d.gen {
		return
	}
	if err := d.tracker.send.Send(viewproc.NewForgetImage(d.id)); err != nil {
		slog.Warn("resource: forget_image failed", "image", d.id, "err", err)
	}
}

// WeakViewImage is ViewImage's non-owning counterpart. Upgrade only
// succeeds while at least one strong ViewImage for the same resource is
// still alive; a dummy weak handle never upgrades.
type WeakViewImage struct {
	d *imageData
}

// Upgrade attempts to produce a new strong handle, lock-free: it loads the
// current strong count and, only while it observes a positive count, tries
// to CAS it up by one, retrying on a lost race rather than ever transiently
// reviving a fully-released resource.
func (w WeakViewImage) Upgrade() (ViewImage, bool) {
	if w.d == nil {
		return ViewImage{}, false
	}
	for {
		cur := w.d.refs.Load()
		if cur <= 0 {
			return ViewImage{}, false
		}
		if w.d.refs.CompareAndSwap(cur, cur+1) {
			return ViewImage{d: w.d}, true
		}
	}
}
