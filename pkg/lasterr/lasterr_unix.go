//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package lasterr

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

func capture(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}

// Describe renders code as "<NAME>: <strerror>".
func Describe(code uint32) string {
	if code == 0 {
		return "success"
	}
	errno := syscall.Errno(code)
	name := unix.ErrnoName(errno)
	if name == "" {
		return unknown(code)
	}
	return name + ": " + errno.Error()
}
