package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/resource"
	"github.com/arborui/arbor/viewproc"
)

type recordingSender struct {
	sent []viewproc.Request
}

func (s *recordingSender) Send(req viewproc.Request) error {
	s.sent = append(s.sent, req)
	return nil
}

func connectedService() *viewproc.Service {
	svc := viewproc.NewService()
	svc.Controller.Connect()
	svc.Controller.Inited(1, false)
	return svc
}

// §4.7 "For metadata events on unknown ids with a parent set, a new handle
// is synthesized so the caller that consumes the event can keep it alive."
func TestHandleImageMetadataSynthesizesHandleForUnknownIdWithParent(t *testing.T) {
	svc := connectedService()
	send := &recordingSender{}
	tr := resource.NewTracker(1, svc, send)

	parent := viewproc.ImageId(7)
	img, ok := tr.HandleImageMetadata(viewproc.ImageId(99), &parent)
	require.True(t, ok, "unknown id with a parent must synthesize a handle")
	assert.Equal(t, viewproc.ImageId(99), img.Id())
	assert.Equal(t, viewproc.ViewProcessGen(1), img.Generation())

	appID, ok := img.AppId()
	require.True(t, ok)
	assert.Equal(t, resource.AppId(1), appID)
}

// Without a parent, an unknown id is dropped silently, not synthesized.
func TestHandleImageMetadataDropsUnknownIdWithoutParent(t *testing.T) {
	svc := connectedService()
	tr := resource.NewTracker(1, svc, &recordingSender{})

	_, ok := tr.HandleImageMetadata(viewproc.ImageId(99), nil)
	assert.False(t, ok)
}

// ImageLoaded/ImageLoadError never synthesize, even for an unknown id —
// only metadata events carry the parent field needed to do so.
func TestHandleImageEventNeverSynthesizes(t *testing.T) {
	svc := connectedService()
	tr := resource.NewTracker(1, svc, &recordingSender{})

	_, ok := tr.HandleImageEvent(viewproc.ImageId(99))
	assert.False(t, ok)
}

// AudioMetadataLoaded's Parent field is AudioData's counterpart.
func TestHandleAudioMetadataSynthesizesHandleForUnknownIdWithParent(t *testing.T) {
	svc := connectedService()
	tr := resource.NewTracker(1, svc, &recordingSender{})

	parent := viewproc.AudioId(3)
	aud, ok := tr.HandleAudioMetadata(viewproc.AudioId(42), &parent)
	require.True(t, ok)
	assert.Equal(t, viewproc.AudioId(42), aud.Id())
}

// Testable property 7, "Handle lifetime": releasing the last strong handle
// while the generation is unchanged issues exactly one forget_image.
func TestReleaseSendsForgetImageWhenGenerationUnchanged(t *testing.T) {
	svc := connectedService()
	send := &recordingSender{}
	tr := resource.NewTracker(1, svc, send)

	img, err := tr.AddImage([]byte("data"))
	require.NoError(t, err)

	img.Release()

	var forgets int
	for _, r := range send.sent {
		if r.Op == viewproc.OpForgetImage {
			forgets++
		}
	}
	assert.Equal(t, 1, forgets)
}

// Releasing after a generation bump issues zero forget_image requests: the
// view already dropped everything from the old generation on respawn.
func TestReleaseSendsNothingAfterGenerationBump(t *testing.T) {
	svc := connectedService()
	send := &recordingSender{}
	tr := resource.NewTracker(1, svc, send)

	img, err := tr.AddImage([]byte("data"))
	require.NoError(t, err)

	svc.Controller.Disconnected(1)
	svc.Controller.Inited(2, true)
	send.sent = nil

	img.Release()

	for _, r := range send.sent {
		assert.NotEqual(t, viewproc.OpForgetImage, r.Op)
	}
}
