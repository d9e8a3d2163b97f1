package viewproc

// Event is one message from the view process to the app. The full catalog
// spans lifecycle, input, drag&drop, config, monitor/device and resource
// events; this module models the ones app-side packages (viewproc itself,
// resource, dialog) actively correlate against, plus ExtensionEvent as the
// generic escape hatch for everything else, the same asymmetry as
// Request/Op for the same reason: most of the catalog is opaque
// pass-through with no app-side state.
type Event interface {
	Kind() string
}

// Inited is the view process announcing it is ready, carrying the
// generation the app must stamp onto every handle created from here on.
type Inited struct {
	Gen ViewProcessGen
	IsRespawn bool
	AvailableInputDevices []InputDeviceId
	AvailableAudioDevices []AudioId
}

func (Inited) Kind() string { return "Inited" }

// Suspended precedes a respawn: the view is about to go away.
type Suspended struct{}

func (Suspended) Kind() string { return "Suspended" }

// Disconnected reports the channel for generation Gen has closed.
type Disconnected struct{ Gen ViewProcessGen }

func (Disconnected) Kind() string { return "Disconnected" }

// WindowOpened/WindowOrHeadlessOpenError/WindowClosed are the open_window
// fire-and-forget request's eventual reply.
type WindowOpened struct {
	Id WindowId
	Data []byte
}

func (WindowOpened) Kind() string { return "WindowOpened" }

type WindowOrHeadlessOpenError struct {
	Id WindowId
	Error string
}

func (WindowOrHeadlessOpenError) Kind() string { return "WindowOrHeadlessOpenError" }

type WindowClosed struct{ Id WindowId }

func (WindowClosed) Kind() string { return "WindowClosed" }

// FrameRendered acknowledges a render/render_update request, optionally with
// a captured frame image (image?) already attached.
type FrameRendered struct {
	Window WindowId
	Frame FrameId
	Image *ImageId
}

func (FrameRendered) Kind() string { return "FrameRendered" }

// ImageMetadataLoaded/ImageLoaded/ImageLoadError/ImageEncoded/ImageEncodeError
// correlate against resource package's loading_images tracking vector.
type ImageMetadataLoaded struct {
	Image ImageId
	Size [2]uint32
	Ppi *float32
	IsMask bool
	// Parent is set when Image is a sub-resource of another image (e.g. an
	// entry nested under a primary request) rather than something the app
	// explicitly added itself; resource.Tracker uses it to synthesize a
	// tracked handle for ids it never requested directly.
	Parent *ImageId
}

func (ImageMetadataLoaded) Kind() string { return "ImageMetadataLoaded" }

type ImageLoaded struct {
	Image ImageId
	Pixels []byte
}

func (ImageLoaded) Kind() string { return "ImageLoaded" }

type ImageLoadError struct {
	Image ImageId
	Error string
}

func (ImageLoadError) Kind() string { return "ImageLoadError" }

type ImageEncoded struct {
	Image ImageId
	Format string
	Data []byte
}

func (ImageEncoded) Kind() string { return "ImageEncoded" }

type ImageEncodeError struct {
	Image ImageId
	Format string
	Error string
}

func (ImageEncodeError) Kind() string { return "ImageEncodeError" }

// AudioMetadataLoaded/AudioDecoded/AudioLoadError are ImageMetadataLoaded/
// ImageLoaded/ImageLoadError's counterparts for add_audio, correlated
// against resource package's loading_audios tracking vector.
type AudioMetadataLoaded struct {
	Audio AudioId
	Duration float32
	// Parent is AudioMetadataLoaded's counterpart to ImageMetadataLoaded's
	// Parent field: set when Audio was never explicitly requested by the
	// app itself.
	Parent *AudioId
}

func (AudioMetadataLoaded) Kind() string { return "AudioMetadataLoaded" }

type AudioDecoded struct {
	Audio AudioId
}

func (AudioDecoded) Kind() string { return "AudioDecoded" }

type AudioLoadError struct {
	Audio AudioId
	Error string
}

func (AudioLoadError) Kind() string { return "AudioLoadError" }

// FrameImageReady correlates a frame_image/frame_image_rect capture request
// against the same ImageId-keyed tracking resource owns, sharing the same
// weak-tracking mechanism as AddImage.
type FrameImageReady struct {
	Window WindowId
	Frame FrameId
	Image ImageId
	Selection *[4]int32
}

func (FrameImageReady) Kind() string { return "FrameImageReady" }

// MsgDialogResponse/FileDialogResponse correlate against package dialog's
// registry by DialogId (marshaled as a uuid string on the wire).
type MsgDialogResponse struct {
	Dialog string
	Response string
}

func (MsgDialogResponse) Kind() string { return "MsgDialogResponse" }

type FileDialogResponse struct {
	Dialog string
	Response string
}

func (FileDialogResponse) Kind() string { return "FileDialogResponse" }

// NotificationDlgResponse is the reply a notification dialog's eventual
// user action (clicked, dismissed, timed out) arrives as, giving package
// dialog's notification table a wire event to correlate against.
type NotificationDlgResponse struct {
	Dialog string
	Response string
}

func (NotificationDlgResponse) Kind() string { return "NotificationDlgResponse" }

// MouseMoved, MouseWheel, WindowChanged and FocusChanged are input/config
// events modeled concretely (rather than folded into ExtensionEvent)
// specifically so Coalesce (coalesce.go) has something typed to
// pattern-match on.
type MouseMoved struct {
	Window WindowId
	Device InputDeviceId
	CoalescedPos [][2]float32
	Position [2]float32
}

func (MouseMoved) Kind() string { return "MouseMoved" }

type MouseWheel struct {
	Window WindowId
	Device InputDeviceId
	Delta [2]float32
	Phase string
}

func (MouseWheel) Kind() string { return "MouseWheel" }

type WindowChanged struct {
	Window WindowId
	Cause string
	Data []byte
}

func (WindowChanged) Kind() string { return "WindowChanged" }

type FocusChanged struct {
	Prev *WindowId
	New *WindowId
}

func (FocusChanged) Kind() string { return "FocusChanged" }

// ExtensionEvent is the generic pass-through reply for app_extension/
// window_extension/render_extension and anything else this module doesn't
// model concretely.
type ExtensionEvent struct {
	Id uint64
	Payload []byte
}

func (ExtensionEvent) Kind() string { return "ExtensionEvent" }
