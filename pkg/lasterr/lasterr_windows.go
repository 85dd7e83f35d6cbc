//go:build windows

package lasterr

import (
	"errors"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// MAKELANGID(LANG_ENGLISH, SUBLANG_ENGLISH_US)
const langEnglishUS = 0x0409

func capture(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	if err == nil {
		if errors.As(windows.GetLastError(), &errno) {
			return uint32(errno)
		}
	}
	return 0
}

// Describe asks the system for the English message of code.
func Describe(code uint32) string {
	buf := make([]uint16, 512)
	flags := uint32(windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS)
	n, err := windows.FormatMessage(flags, 0, code, langEnglishUS, buf, nil)
	if err != nil || n == 0 {
		return unknown(code)
	}
	return strings.TrimRight(windows.UTF16ToString(buf[:n]), "\r\n .")
}
