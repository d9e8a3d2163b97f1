// Package errors provides small helpers for the "log and continue" error
// handling pattern used throughout the update and delivery engine: failures
// during event dispatch must never unwind the scheduler, so most call sites
// log and move on rather than propagating.
package errors

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log logs the given error, if non-nil, tagged with the caller's location,
// and returns it unchanged. Typical usage:
//
// errors.Log(doSomething)
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error()+" | "+CallerInfo(), "err", err)
	}
	return err
}

// Log1 logs a non-nil error with caller info and returns v. Typical usage:
//
// widget := errors.Log1(lookupWidget(id))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error()+" | "+CallerInfo(), "err", err)
	}
	return v
}

// Ignore1 discards an error return, making the call's single value usable
// inline where a caller has already decided the error cannot matter.
func Ignore1[T any](v T, _ error) T {
	return v
}

// CallerInfo returns the function name and file:line of the function that
// called the function that called CallerInfo (i.e. two frames up), for
// attaching to log lines without a full stack trace.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "?"
	if fn != nil {
		name = fn.Name()
	}
	return name + " " + file + ":" + strconv.Itoa(line)
}
