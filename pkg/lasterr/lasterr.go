// Package lasterr snapshots the last OS error code of the calling goroutine.
//
// Go hands the errno of a failed system call back in the returned error
// rather than in thread-local storage, so the snapshot is taken from that
// error. On Windows a nil error falls back to GetLastError, which is only
// meaningful right after the failing call on the same locked OS thread.
//
// A LastError describes the goroutine that captured it. Do not hand it to
// another goroutine as if it described that goroutine's state.
package lasterr

import "fmt"

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// LastError holds an error code read once at construction.
type LastError struct {
	_    noCopy
	code uint32
}

// Capture must be the first thing done after the failing call: anything in
// between may overwrite the code.
func Capture(err error) *LastError {
	return &LastError{code: capture(err)}
}

func (e *LastError) Code() uint32 {
	return e.code
}

func (e *LastError) Success() bool {
	return e.code == 0
}

// Describe returns an English description of the code. It is meant for
// developers and is never localized.
func (e *LastError) Describe() string {
	return Describe(e.code)
}

func (e *LastError) String() string {
	return fmt.Sprintf("%d: %s", e.code, e.Describe())
}

func unknown(code uint32) string {
	return fmt.Sprintf("unknown error %d", code)
}
