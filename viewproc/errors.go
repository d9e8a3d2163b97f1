package viewproc

import "github.com/cockroachdb/errors"

// Sentinel errors observable to app code. Callers compare with errors.Is;
// view-directed calls wrap these with causal context via errors.Wrap before
// returning.
var (
	// ErrDisconnected is returned by every view-directed call when the
	// generation is invalid (view process offline / channel closed).
	ErrDisconnected = errors.New("viewproc: disconnected")

	// ErrDummyHandle is returned by any operation attempted on a dummy
	// (always-disconnected) handle.
	ErrDummyHandle = errors.New("viewproc: dummy handle")

	// ErrInvalidGeneration marks a handle from a prior generation. It is
	// reported to callers as ErrDisconnected (AsDisconnected below), but
	// kept as a distinct sentinel so internal bookkeeping can still tell
	// the two apart before translating.
	ErrInvalidGeneration = errors.New("viewproc: invalid generation")

	// ErrWindowNotFound is returned when a requested window id is not
	// present, e.g. a late view-task racing a close.
	ErrWindowNotFound = errors.New("viewproc: window not found")

	// ErrAppDisconnected is surfaced only in external wake attempts: the
	// app-event sender itself has been closed.
	ErrAppDisconnected = errors.New("viewproc: app event sender closed")
)

// EncodeError is the tagged result of an add_image/encode_image future
// ("EncodeError — {Encode(msg) | Dummy | Loading | Disconnected}").
type EncodeErrorKind int

const (
	EncodeErrNone EncodeErrorKind = iota
	EncodeErrEncode
	EncodeErrDummy
	EncodeErrLoading
	EncodeErrDisconnected
)

// EncodeError wraps an encode-specific failure kind with an optional
// underlying message for the Encode case.
type EncodeError struct {
	Kind EncodeErrorKind
	Msg string
}

func (e *EncodeError) Error() string {
	switch e.Kind {
	case EncodeErrEncode:
		return "viewproc: image encode failed: " + e.Msg
	case EncodeErrDummy:
		return "viewproc: image encode on dummy handle"
	case EncodeErrLoading:
		return "viewproc: image still loading"
	case EncodeErrDisconnected:
		return ErrDisconnected.Error()
	default:
		return "viewproc: encode error"
	}
}

// AsDisconnected translates ErrInvalidGeneration to ErrDisconnected (a
// handle from a prior generation is reported to callers as disconnected);
// any other error passes through unchanged.
func AsDisconnected(err error) error {
	if errors.Is(err, ErrInvalidGeneration) {
		return errors.Wrap(ErrDisconnected, "stale generation")
	}
	return err
}
