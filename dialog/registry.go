package dialog

import (
	"github.com/arborui/arbor/viewproc"
)

// New creates a Registry that issues dialog requests through send and
// registers itself with svc so a respawn triggers ResetOnRespawn.
func New(svc *viewproc.Service, send Sender) *Registry {
	r := &Registry{send: send}
	svc.Register(r)
	return r
}

// OpenMessage sends message_dialog for window win and returns a Responder
// the caller awaits for the user's button choice ("message_dialog(req)").
func (r *Registry) OpenMessage(win viewproc.WindowId, title, message string) (*Responder[MsgDialogResponse], error) {
	id := newID()
	resp := newResponder[MsgDialogResponse]()

	r.mu.Lock()
	r.msgs = append(r.msgs, msgEntry{id: id, resp: resp})
	r.mu.Unlock()

	if err := r.send.Send(viewproc.NewMessageDialog(win, id.String(), title, message)); err != nil {
		r.removeMsg(id)
		resp.resolve(MsgDialogResponse{}, err)
		return resp, err
	}
	return resp, nil
}

// OpenFile sends file_dialog and returns a Responder for the chosen paths
// (or a cancellation, surfaced as an empty Paths slice).
func (r *Registry) OpenFile(win viewproc.WindowId, kind, title, filters string) (*Responder[FileDialogResponse], error) {
	id := newID()
	resp := newResponder[FileDialogResponse]()

	r.mu.Lock()
	r.files = append(r.files, fileEntry{id: id, resp: resp})
	r.mu.Unlock()

	if err := r.send.Send(viewproc.NewFileDialog(win, id.String(), kind, title, filters)); err != nil {
		r.removeFile(id)
		resp.resolve(FileDialogResponse{}, err)
		return resp, err
	}
	return resp, nil
}

// OpenNotification posts notification_dialog and returns a Responder for
// the eventual user action (clicked, dismissed, timed out). content is an
// opaque, view-defined payload; this module never interprets it.
func (r *Registry) OpenNotification(content []byte) (*Responder[NotificationResponse], error) {
	id := newID()
	resp := newResponder[NotificationResponse]()

	r.mu.Lock()
	r.notify = append(r.notify, notifyEntry{id: id, resp: resp})
	r.mu.Unlock()

	if err := r.send.Send(viewproc.NewNotificationDialog(id.String(), content)); err != nil {
		r.removeNotify(id)
		resp.resolve(NotificationResponse{}, err)
		return resp, err
	}
	return resp, nil
}

// UpdateNotification re-posts content for an already-open notification. The
// caller drives the update explicitly; there is no hooked reactive variable
// that updates the notification's content automatically.
func (r *Registry) UpdateNotification(id Id, content []byte) error {
	return r.send.Send(viewproc.NewUpdateNotification(id.String(), content))
}

// HandleMsgResponse correlates an incoming MsgDialogResponse wire event
// against the message table, resolving and removing the matching entry.
// An id with no matching entry (already resolved by respawn, or a stray
// duplicate reply) is dropped silently.
func (r *Registry) HandleMsgResponse(ev viewproc.MsgDialogResponse) {
	id, err := ParseId(ev.Dialog)
	if err != nil {
		return
	}
	entry, ok := r.removeMsg(id)
	if !ok {
		return
	}
	entry.resp.resolve(MsgDialogResponse{Button: ev.Response}, nil)
}

// HandleFileResponse is HandleMsgResponse's counterpart for file dialogs.
func (r *Registry) HandleFileResponse(ev viewproc.FileDialogResponse) {
	id, err := ParseId(ev.Dialog)
	if err != nil {
		return
	}
	entry, ok := r.removeFile(id)
	if !ok {
		return
	}
	entry.resp.resolve(FileDialogResponse{Paths: splitPaths(ev.Response)}, nil)
}

// HandleNotificationResponse is HandleMsgResponse's counterpart for
// notifications.
func (r *Registry) HandleNotificationResponse(ev viewproc.NotificationDlgResponse) {
	id, err := ParseId(ev.Dialog)
	if err != nil {
		return
	}
	entry, ok := r.removeNotify(id)
	if !ok {
		return
	}
	entry.resp.resolve(NotificationResponse{Action: ev.Response}, nil)
}

// ResetOnRespawn resolves every outstanding responder with ErrRespawn and
// empties all three tables, implementing viewproc.Resettable: on transition
// to a new generation, every outstanding dialog responder is resolved with
// ErrRespawn rather than left to hang forever.
func (r *Registry) ResetOnRespawn() {
	r.mu.Lock()
	msgs, files, notify := r.msgs, r.files, r.notify
	r.msgs, r.files, r.notify = nil, nil, nil
	r.mu.Unlock()

	for _, e := range msgs {
		e.resp.resolve(MsgDialogResponse{}, ErrRespawn)
	}
	for _, e := range files {
		e.resp.resolve(FileDialogResponse{}, ErrRespawn)
	}
	for _, e := range notify {
		e.resp.resolve(NotificationResponse{}, ErrRespawn)
	}
}

func (r *Registry) removeMsg(id Id) (msgEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.msgs {
		if e.id == id {
			r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
			return e, true
		}
	}
	return msgEntry{}, false
}

func (r *Registry) removeFile(id Id) (fileEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.files {
		if e.id == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return e, true
		}
	}
	return fileEntry{}, false
}

func (r *Registry) removeNotify(id Id) (notifyEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.notify {
		if e.id == id {
			r.notify = append(r.notify[:i], r.notify[i+1:]...)
			return e, true
		}
	}
	return notifyEntry{}, false
}

// splitPaths decodes a file dialog's wire response string into individual
// paths. The view process joins multi-select results with a NUL separator,
// matching common native file-picker multi-selection wire conventions.
func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// PendingCount reports the number of outstanding dialogs across all three
// tables, for diagnostics and tests.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs) + len(r.files) + len(r.notify)
}
