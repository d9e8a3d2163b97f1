package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborui/arbor/viewproc"
)

type noopSender struct{ sent []viewproc.Request }

func (s *noopSender) Send(req viewproc.Request) error {
	s.sent = append(s.sent, req)
	return nil
}

// §4.7 "drop is inert and may log an error if app ids mismatch (cross-app
// use)". imageData.appID is stamped at creation time and never changes; a
// handle released through a Tracker whose own appID disagrees with the
// handle's stamped one must not send forget_image, distinct from (and
// checked before) the generation comparison.
func TestReleaseIsInertAndLogsOnAppIdMismatch(t *testing.T) {
	svc := viewproc.NewService()
	svc.Controller.Connect()
	svc.Controller.Inited(1, false)

	send := &noopSender{}
	tr := &Tracker{appID: AppId(2), svc: svc, send: send}

	d := &imageData{appID: AppId(1), gen: svc.Controller.Generation(), id: viewproc.ImageId(5), tracker: tr}
	d.refs.Store(1)
	img := ViewImage{d: d}

	img.Release()

	require.Empty(t, send.sent, "app-id mismatch must short-circuit before forget_image is sent")
	assert.True(t, img.IsDummy(), "Release always clears the receiver's own handle")
}
