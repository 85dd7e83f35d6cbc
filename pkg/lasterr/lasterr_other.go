//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package lasterr

import (
	"errors"
	"syscall"
)

func capture(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}

func Describe(code uint32) string {
	if code == 0 {
		return "success"
	}
	return unknown(code)
}
