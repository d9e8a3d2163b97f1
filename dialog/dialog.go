// Package dialog implements DialogRegistry: correlation tables that match a
// DialogId minted for an outstanding message/file/notification dialog
// request against the Responder waiting on its eventual reply, including
// the respawn-safe behavior that resolves every outstanding responder with
// a synthetic error when the view process is replaced
// (message_dialogs/file_dialogs/notifications tables and their
// on_respawn/on_*_dlg_response handling), using a plain buffered Go channel
// as the one-shot future since this module has no reactive variable system
// of its own.
package dialog

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/arborui/arbor/viewproc"
)

// Id is a DialogId: a one-shot correlation token for a single dialog
// request/response round trip. Unlike WidgetId/WindowId (small reusable or
// never-reused counters), dialog ids are minted as UUIDv4s so an id from one
// app run, or one generation, can never be confused with a stale reused
// value.
type Id uuid.UUID

// String renders Id the way it is marshaled on the wire (viewproc's
// MessageDialogArgs.Dialog / FileDialogResponse.Dialog fields).
func (id Id) String() string { return uuid.UUID(id).String() }

// newID mints a fresh dialog correlation token.
func newID() Id { return Id(uuid.New()) }

// ParseId parses a wire-format dialog id string back into an Id.
func ParseId(s string) (Id, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Id{}, errors.Wrap(err, "dialog: parse id")
	}
	return Id(u), nil
}

// ErrRespawn is the synthetic error every outstanding responder resolves
// with when the view process respawns mid-dialog.
var ErrRespawn = errors.New("respawn")

// Responder is a single-value future a caller awaits for one dialog's
// response, implemented as a buffered channel of size 1 rather than
// adopting a full reactive-variable system, which is out of scope here.
type Responder[T any] struct {
	ch chan result[T]
}

type result[T any] struct {
	value T
	err error
}

func newResponder[T any]() *Responder[T] {
	return &Responder[T]{ch: make(chan result[T], 1)}
}

// Recv blocks for the response or error. It is safe to call at most once;
// subsequent calls after the first observe the same buffered value is not
// guaranteed (matches a single-shot future, not a broadcast).
func (r *Responder[T]) Recv() (T, error) {
	res := <-r.ch
	return res.value, res.err
}

// TryRecv reports, without blocking, whether a successful response has
// already arrived; a response resolved with an error reports false (Recv
// still returns that error).
func (r *Responder[T]) TryRecv() (T, bool) {
	select {
	case res := <-r.ch:
		r.ch <- res // put back so a later Recv still observes it
		return res.value, res.err == nil
	default:
		var zero T
		return zero, false
	}
}

func (r *Responder[T]) resolve(v T, err error) {
	select {
	case r.ch <- result[T]{value: v, err: err}:
	default:
		// already resolved; a dialog id must correlate to exactly one
		// response, so a second resolve attempt is a framework bug, logged
		// rather than panicking per the "never unwind" policy.
		slog.Error("dialog: responder resolved twice")
	}
}

// Sender is the subset of viewproc/wire.Conn a Registry needs to issue
// dialog requests.
type Sender interface {
	Send(viewproc.Request) error
}

// msgEntry/fileEntry/notifyEntry are Registry's table rows: one per
// outstanding message/file/notification dialog request awaiting a response.
type msgEntry struct {
	id Id
	resp *Responder[MsgDialogResponse]
}

type fileEntry struct {
	id Id
	resp *Responder[FileDialogResponse]
}

type notifyEntry struct {
	id Id
	resp *Responder[NotificationResponse]
}

// MsgDialogResponse/FileDialogResponse/NotificationResponse are the typed
// payloads a Responder resolves with, decoded from the wire's plain string
// response fields (viewproc.MsgDialogResponse.Response etc.).
type MsgDialogResponse struct{ Button string }
type FileDialogResponse struct{ Paths []string }
type NotificationResponse struct{ Action string }

// Registry is DialogRegistry: the three correlation tables plus the Sender
// used to issue the opening request for each kind.
type Registry struct {
	send Sender

	mu sync.Mutex
	msgs []msgEntry
	files []fileEntry
	notify []notifyEntry
}
