package viewproc

import "encoding/json"

// Op names one request the app may send to the view process.
// The full catalog is wide (60+ operations spanning window chrome, images,
// audio, fonts, clipboard, dialogs and extensions) and is carried here as a
// string enum plus a generic JSON payload rather than one Go struct per op:
// most of these ops are fire-and-forget or simple-field requests the app
// core only ever forwards opaquely (window chrome setters, font management),
// so a typed struct per op would be ~50 near-identical wrapper types with no
// behavior of their own. The handful of ops this module's own packages
// (resource, dialog) need richly typed responses for — add_image,
// encode_image, message_dialog, file_dialog, notification_dialog, ping,
// render, render_update — get named constructors below that still produce a
// Request, keeping their call sites type-checked even though the wire shape
// stays uniform.
type Op string

const (
	OpOpenWindow Op = "open_window"
	OpOpenHeadless Op = "open_headless"
	OpClose Op = "close"
	OpSetTitle Op = "set_title"
	OpSetVisible Op = "set_visible"
	OpBringToTop Op = "bring_to_top"
	OpFocus Op = "focus"
	OpDragMove Op = "drag_move"
	OpDragResize Op = "drag_resize"
	OpAddImage Op = "add_image"
	OpAddImagePro Op = "add_image_pro"
	OpEncodeImage Op = "encode_image"
	OpUseImage Op = "use_image"
	OpDeleteImageUse Op = "delete_image_use"
	OpFrameImage Op = "frame_image"
	OpFrameImageRect Op = "frame_image_rect"
	OpForgetImage Op = "forget_image"
	OpAddAudio Op = "add_audio"
	OpAddAudioPro Op = "add_audio_pro"
	OpOpenAudioOutput Op = "open_audio_output"
	OpCueAudio Op = "cue_audio"
	OpCloseAudioOut Op = "close_audio_output"
	OpForgetAudio Op = "forget_audio"
	OpAddFontFace Op = "add_font_face"
	OpDeleteFontFace Op = "delete_font_face"
	OpAddFont Op = "add_font"
	OpDeleteFont Op = "delete_font"
	OpRender Op = "render"
	OpRenderUpdate Op = "render_update"
	OpReadClipboard Op = "read_clipboard"
	OpWriteClipboard Op = "write_clipboard"
	OpMessageDialog Op = "message_dialog"
	OpFileDialog Op = "file_dialog"
	OpNotifyDialog Op = "notification_dialog"
	OpUpdateNotify Op = "update_notification"
	OpAppExtension Op = "app_extension"
	OpWindowExtension Op = "window_extension"
	OpRenderExtension Op = "render_extension"
	OpPing Op = "ping"
	OpRespawn Op = "respawn"
)

// Request is one app→view message: the operation name plus its JSON-encoded
// arguments. Generation is stamped by App.Send before send so a reply racing
// a respawn can be recognized as stale.
type Request struct {
	Op Op `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
	Gen ViewProcessGen `json:"gen"`
}

// newRequest JSON-encodes args (which may be nil) into a Request for op.
func newRequest(op Op, args any) Request {
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err == nil {
			raw = b
		}
	}
	return Request{Op: op, Args: raw}
}

// PingArgs is ping's one field: a wrapping counter the app increments on
// every send, logging a warning if the matching pong disagrees ("ping: the app sends a ping with a wrapping u16 counter").
type PingArgs struct {
	Count uint16 `json:"count"`
}

func NewPing(count uint16) Request { return newRequest(OpPing, PingArgs{Count: count}) }

// AddImageArgs carries whatever the app already has in hand to start a
// decode (raw bytes or a pre-declared size/format); the view owns the
// actual decode. Id is minted by the app (package resource) rather than by
// the view, since the request/event channel here is asynchronous rather
// than a blocking call — the app must have something to key its pending
// loads on before any reply can arrive.
type AddImageArgs struct {
	Id ImageId `json:"id"`
	Data []byte `json:"data"`
}

func NewAddImage(id ImageId, data []byte) Request {
	return newRequest(OpAddImage, AddImageArgs{Id: id, Data: data})
}

// AddAudioArgs is AddImageArgs' counterpart for add_audio.
type AddAudioArgs struct {
	Id AudioId `json:"id"`
	Data []byte `json:"data"`
}

func NewAddAudio(id AudioId, data []byte) Request {
	return newRequest(OpAddAudio, AddAudioArgs{Id: id, Data: data})
}

// ForgetAudioArgs requests the view release an audio resource, ForgetImageArgs'
// counterpart sent by a handle's Release when its generation still matches.
type ForgetAudioArgs struct {
	Audio AudioId `json:"audio"`
}

func NewForgetAudio(id AudioId) Request {
	return newRequest(OpForgetAudio, ForgetAudioArgs{Audio: id})
}

// FrameImageArgs requests the view capture the last rendered frame of window
// into a new image, optionally cropped to rect (frame_image/frame_image_rect).
type FrameImageArgs struct {
	Window WindowId `json:"window"`
	Id ImageId `json:"id"`
	Rect *[4]int32 `json:"rect,omitempty"`
}

func NewFrameImage(win WindowId, id ImageId) Request {
	return newRequest(OpFrameImage, FrameImageArgs{Window: win, Id: id})
}

func NewFrameImageRect(win WindowId, id ImageId, rect [4]int32) Request {
	return newRequest(OpFrameImageRect, FrameImageArgs{Window: win, Id: id, Rect: &rect})
}

// EncodeImageArgs requests the view re-encode a previously added image to
// format (e.g. "png").
type EncodeImageArgs struct {
	Image ImageId `json:"image"`
	Format string `json:"format"`
}

func NewEncodeImage(id ImageId, format string) Request {
	return newRequest(OpEncodeImage, EncodeImageArgs{Image: id, Format: format})
}

// ForgetImageArgs requests the view release a resource, sent by a handle's
// Release when its generation still matches.
type ForgetImageArgs struct {
	Image ImageId `json:"image"`
}

func NewForgetImage(id ImageId) Request {
	return newRequest(OpForgetImage, ForgetImageArgs{Image: id})
}

// MessageDialogArgs opens a blocking-from-the-app's-perspective dialog
// correlated by DialogId (package dialog mints and tracks these).
type MessageDialogArgs struct {
	Window WindowId `json:"window"`
	Dialog string `json:"dialog"` // Go's DialogId (uuid) marshaled as string
	Title string `json:"title"`
	Message string `json:"message"`
}

func NewMessageDialog(win WindowId, dialogId, title, message string) Request {
	return newRequest(OpMessageDialog, MessageDialogArgs{Window: win, Dialog: dialogId, Title: title, Message: message})
}

// FileDialogArgs opens a native file picker, correlated the same way as
// MessageDialogArgs. Kind distinguishes open/save/pick-folder; Filters is an
// opaque, view-defined filter string (e.g. "Images (*.png;*.jpg)").
type FileDialogArgs struct {
	Window WindowId `json:"window"`
	Dialog string `json:"dialog"`
	Kind string `json:"kind"`
	Title string `json:"title"`
	Filters string `json:"filters,omitempty"`
}

func NewFileDialog(win WindowId, dialogId, kind, title, filters string) Request {
	return newRequest(OpFileDialog, FileDialogArgs{Window: win, Dialog: dialogId, Kind: kind, Title: title, Filters: filters})
}

// NotificationDialogArgs posts or updates a native notification; Dialog
// correlates the eventual user action back to the registrant, Content is an
// opaque view-defined payload (title/body/icon) the app never interprets.
type NotificationDialogArgs struct {
	Dialog string `json:"dialog"`
	Content []byte `json:"content"`
}

func NewNotificationDialog(dialogId string, content []byte) Request {
	return newRequest(OpNotifyDialog, NotificationDialogArgs{Dialog: dialogId, Content: content})
}

func NewUpdateNotification(dialogId string, content []byte) Request {
	return newRequest(OpUpdateNotify, NotificationDialogArgs{Dialog: dialogId, Content: content})
}

// RenderArgs submits a full frame for window; RenderUpdateArgs a cheaper
// incremental one — both carry an opaque, already-recorded display-list
// payload the renderer (out of scope here) produced.
type RenderArgs struct {
	Window WindowId `json:"window"`
	Frame FrameId `json:"frame"`
	Data []byte `json:"data"`
}

func NewRender(win WindowId, frame FrameId, data []byte) Request {
	return newRequest(OpRender, RenderArgs{Window: win, Frame: frame, Data: data})
}

func NewRenderUpdate(win WindowId, frame FrameId, data []byte) Request {
	return newRequest(OpRenderUpdate, RenderArgs{Window: win, Frame: frame, Data: data})
}

// ExtensionArgs is the generic pass-through request shape backing
// app_extension/window_extension/render_extension: a generic
// (id uint64, payload []byte) request an application-defined extension
// handler interprets on the view side.
type ExtensionArgs struct {
	Id uint64 `json:"id"`
	Payload []byte `json:"payload"`
}

func NewAppExtension(id uint64, payload []byte) Request {
	return newRequest(OpAppExtension, ExtensionArgs{Id: id, Payload: payload})
}

func NewWindowExtension(win WindowId, id uint64, payload []byte) Request {
	type windowExtensionArgs struct {
		Window WindowId `json:"window"`
		ExtensionArgs
	}
	return newRequest(OpWindowExtension, windowExtensionArgs{Window: win, ExtensionArgs: ExtensionArgs{Id: id, Payload: payload}})
}

func NewRespawn() Request { return newRequest(OpRespawn, nil) }
