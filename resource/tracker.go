// Package resource implements ResourceHandles: shared-ownership ViewImage/
// ViewAudio handles over view-process resources, their weak tracking
// vectors, and the correlation between incoming decode events and the
// handle that is waiting on them. Releasing a handle is an explicit Release
// call rather than falling out of scope on drop, and "weak" tracking is a
// lock-free atomic-refcount upgrade rather than a GC weak pointer.
package resource

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/arborui/arbor/viewproc"
)

// AppId identifies the owning app, stamped onto every handle so a handle
// accidentally used from a different app is caught rather than silently
// operating on someone else's resource ("(AppId, ViewProcessGen,
// ResourceId)").
type AppId uint64

// Sender is the subset of viewproc/wire.Conn a Tracker needs to issue
// forget_image/forget_audio/frame_image requests.
type Sender interface {
	Send(viewproc.Request) error
}

// Tracker is the app-side half of ResourceHandles: it mints ids for new
// image/audio resources, tracks outstanding handles weakly so it can
// correlate and prune on every decode event, and registers with a
// viewproc.Service as a Resettable so a respawn wipes stale tracking.
type Tracker struct {
	appID AppId
	svc *viewproc.Service
	send Sender

	ids idMinter

	mu sync.Mutex
	loadingImages []*imageData
	loadingAudios []*audioData
}

// idMinter mints process-local ImageId/AudioId values, wrapping around
// before zero exactly like viewproc's own id spaces.
type idMinter struct {
	mu sync.Mutex
	nextImage uint64
	nextAudio uint64
}

func (m *idMinter) image() viewproc.ImageId {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		m.nextImage++
		if m.nextImage != 0 {
			return viewproc.ImageId(m.nextImage)
		}
	}
}

func (m *idMinter) audio() viewproc.AudioId {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		m.nextAudio++
		if m.nextAudio != 0 {
			return viewproc.AudioId(m.nextAudio)
		}
	}
}

// NewTracker creates a Tracker for appID, registering it with svc so it is
// notified on every generation bump; send is used to issue forget_*
// requests when the last strong handle of a live generation releases.
func NewTracker(appID AppId, svc *viewproc.Service, send Sender) *Tracker {
	t := &Tracker{appID: appID, svc: svc, send: send}
	svc.Register(t)
	return t
}

// ResetOnRespawn clears both tracking vectors: outstanding handles from the
// old generation are already inert (Release on them is a no-op), so nothing
// further needs pruning, only forgetting the bookkeeping itself.
func (t *Tracker) ResetOnRespawn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loadingImages = nil
	t.loadingAudios = nil
}

func (t *Tracker) currentGen() viewproc.ViewProcessGen {
	return t.svc.Controller.Generation()
}

// AddImage sends add_image with a freshly minted id and returns a strong
// handle tracked weakly in loadingImages so HandleImageMetadata can
// correlate the eventual ImageMetadataLoaded, and HandleImageEvent the
// ImageLoaded/ImageLoadError, back to it.
func (t *Tracker) AddImage(data []byte) (ViewImage, error) {
	gen := t.currentGen()
	if gen == viewproc.InvalidGen {
		return ViewImage{}, errors.Wrap(viewproc.ErrDisconnected, "resource: add_image")
	}
	id := t.ids.image()
	d := &imageData{appID: t.appID, gen: gen, id: id, tracker: t}
	d.refs.Store(1)

	t.mu.Lock()
	t.loadingImages = append(t.loadingImages, d)
	t.mu.Unlock()

	if err := t.send.Send(viewproc.NewAddImage(id, data)); err != nil {
		return ViewImage{}, errors.Wrap(err, "resource: add_image")
	}
	return ViewImage{d: d}, nil
}

// AddAudio is AddImage's counterpart for add_audio.
func (t *Tracker) AddAudio(data []byte) (ViewAudio, error) {
	gen := t.currentGen()
	if gen == viewproc.InvalidGen {
		return ViewAudio{}, errors.Wrap(viewproc.ErrDisconnected, "resource: add_audio")
	}
	id := t.ids.audio()
	d := &audioData{appID: t.appID, gen: gen, id: id, tracker: t}
	d.refs.Store(1)

	t.mu.Lock()
	t.loadingAudios = append(t.loadingAudios, d)
	t.mu.Unlock()

	if err := t.send.Send(viewproc.NewAddAudio(id, data)); err != nil {
		return ViewAudio{}, errors.Wrap(err, "resource: add_audio")
	}
	return ViewAudio{d: d}, nil
}

// findImage scans loadingImages for id, pruning any entry whose strong
// handle has already been fully released (refs <= 0) while it's at it. If
// id is not found and parent is non-nil, a new handle is synthesized and
// tracked in its place: the view process sent metadata for an id this app
// never explicitly requested (e.g. an entry image nested under a primary
// request), so the caller consuming the event still gets a handle that
// keeps the resource alive.
func (t *Tracker) findImage(id viewproc.ImageId, parent *viewproc.ImageId) *imageData {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.loadingImages[:0]
	var found *imageData
	for _, d := range t.loadingImages {
		if d.refs.Load() <= 0 {
			continue
		}
		kept = append(kept, d)
		if d.id == id {
			found = d
		}
	}
	if found == nil && parent != nil {
		found = &imageData{appID: t.appID, gen: t.currentGen(), id: id, tracker: t}
		found.refs.Store(1)
		kept = append(kept, found)
	}
	t.loadingImages = kept
	return found
}

func (t *Tracker) findAudio(id viewproc.AudioId, parent *viewproc.AudioId) *audioData {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.loadingAudios[:0]
	var found *audioData
	for _, d := range t.loadingAudios {
		if d.refs.Load() <= 0 {
			continue
		}
		kept = append(kept, d)
		if d.id == id {
			found = d
		}
	}
	if found == nil && parent != nil {
		found = &audioData{appID: t.appID, gen: t.currentGen(), id: id, tracker: t}
		found.refs.Store(1)
		kept = append(kept, found)
	}
	t.loadingAudios = kept
	return found
}

// HandleImageEvent prunes and correlates ImageLoaded/ImageLoadError against
// the tracking vector, returning the matching handle if one was found. Unknown ids are silently dropped: only a metadata event carries
// the parent field needed to synthesize a handle for an id this app never
// requested directly.
func (t *Tracker) HandleImageEvent(id viewproc.ImageId) (ViewImage, bool) {
	d := t.findImage(id, nil)
	if d == nil {
		return ViewImage{}, false
	}
	return ViewImage{d: d}, true
}

// HandleImageMetadata correlates an incoming ImageMetadataLoaded event. If
// id is unknown but parent is set, a new handle is synthesized and tracked
// so the caller consuming the event can keep the resource alive.
func (t *Tracker) HandleImageMetadata(id viewproc.ImageId, parent *viewproc.ImageId) (ViewImage, bool) {
	d := t.findImage(id, parent)
	if d == nil {
		return ViewImage{}, false
	}
	return ViewImage{d: d}, true
}

// HandleAudioEvent is HandleImageEvent's counterpart for audio ids.
func (t *Tracker) HandleAudioEvent(id viewproc.AudioId) (ViewAudio, bool) {
	d := t.findAudio(id, nil)
	if d == nil {
		return ViewAudio{}, false
	}
	return ViewAudio{d: d}, true
}

// HandleAudioMetadata is HandleImageMetadata's counterpart for audio ids.
func (t *Tracker) HandleAudioMetadata(id viewproc.AudioId, parent *viewproc.AudioId) (ViewAudio, bool) {
	d := t.findAudio(id, parent)
	if d == nil {
		return ViewAudio{}, false
	}
	return ViewAudio{d: d}, true
}

// FrameImage issues frame_image, minting a new tracked ImageId the eventual
// FrameImageReady event correlates against, sharing the same ImageId-keyed
// weak-tracking mechanism as AddImage.
func (t *Tracker) FrameImage(win viewproc.WindowId) (ViewImage, error) {
	gen := t.currentGen()
	if gen == viewproc.InvalidGen {
		return ViewImage{}, errors.Wrap(viewproc.ErrDisconnected, "resource: frame_image")
	}
	id := t.ids.image()
	d := &imageData{appID: t.appID, gen: gen, id: id, tracker: t}
	d.refs.Store(1)

	t.mu.Lock()
	t.loadingImages = append(t.loadingImages, d)
	t.mu.Unlock()

	if err := t.send.Send(viewproc.NewFrameImage(win, id)); err != nil {
		return ViewImage{}, errors.Wrap(err, "resource: frame_image")
	}
	return ViewImage{d: d}, nil
}
