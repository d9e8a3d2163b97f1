// Package wire is the app-side transport for the view-process IPC channel:
// JSON-framed Request/Event messages over a loopback WebSocket connection.
// It generalizes base/websocket.Client (a thin wrapper over gorilla/websocket
// for a duplex message stream) from a single-purpose client into the
// Send(Request)/Recv(Event) shape this module's Controller needs.
package wire

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/arborui/arbor/viewproc"
)

// envelope is the wire shape for an inbound message: a discriminant plus
// the raw JSON payload, decoded into the matching concrete viewproc.Event
// by Recv.
type envelope struct {
	Kind string `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Conn wraps a connected *websocket.Conn with the JSON Request/Event
// framing this module's wire protocol uses.
type Conn struct {
	ws *websocket.Conn
}

// Dial opens a WebSocket connection to the view process at url, mirroring
// base/websocket.Connect's use of websocket.DefaultDialer.
func Dial(url string) (*Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "wire: dial view process")
	}
	return &Conn{ws: conn}, nil
}

// Send encodes req as a single JSON text message.
func (c *Conn) Send(req viewproc.Request) error {
	if err := c.ws.WriteJSON(req); err != nil {
		return errors.Wrap(err, "wire: send request")
	}
	return nil
}

// Recv blocks for the next inbound message and decodes it into the
// concrete viewproc.Event its Kind names. Unknown kinds decode to an
// ExtensionEvent rather than erroring, so a view process built against a
// newer wire version degrades gracefully instead of wedging the connection.
func (c *Conn) Recv() (viewproc.Event, error) {
	var env envelope
	if err := c.ws.ReadJSON(&env); err != nil {
		return nil, errors.Wrap(err, "wire: receive event")
	}
	return decode(env)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}

func decode(env envelope) (viewproc.Event, error) {
	var err error
	decodeInto := func(v any) (viewproc.Event, bool) {
		if e := json.Unmarshal(env.Payload, v); e != nil {
			err = errors.Wrap(e, "wire: decode "+env.Kind)
			return nil, false
		}
		return v.(viewproc.Event), true
	}

	switch env.Kind {
	case "Inited":
		var e viewproc.Inited
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "Suspended":
		return viewproc.Suspended{}, nil
	case "Disconnected":
		var e viewproc.Disconnected
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "WindowOpened":
		var e viewproc.WindowOpened
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "WindowOrHeadlessOpenError":
		var e viewproc.WindowOrHeadlessOpenError
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "WindowClosed":
		var e viewproc.WindowClosed
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "FrameRendered":
		var e viewproc.FrameRendered
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "ImageMetadataLoaded":
		var e viewproc.ImageMetadataLoaded
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "ImageLoaded":
		var e viewproc.ImageLoaded
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "ImageLoadError":
		var e viewproc.ImageLoadError
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "ImageEncoded":
		var e viewproc.ImageEncoded
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "ImageEncodeError":
		var e viewproc.ImageEncodeError
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "AudioMetadataLoaded":
		var e viewproc.AudioMetadataLoaded
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "AudioDecoded":
		var e viewproc.AudioDecoded
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "AudioLoadError":
		var e viewproc.AudioLoadError
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "FrameImageReady":
		var e viewproc.FrameImageReady
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "MsgDialogResponse":
		var e viewproc.MsgDialogResponse
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "FileDialogResponse":
		var e viewproc.FileDialogResponse
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "NotificationDlgResponse":
		var e viewproc.NotificationDlgResponse
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "MouseMoved":
		var e viewproc.MouseMoved
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "MouseWheel":
		var e viewproc.MouseWheel
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "WindowChanged":
		var e viewproc.WindowChanged
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	case "FocusChanged":
		var e viewproc.FocusChanged
		if _, ok := decodeInto(&e); ok {
			return e, nil
		}
	default:
		return viewproc.ExtensionEvent{Payload: env.Payload}, nil
	}
	return nil, err
}
