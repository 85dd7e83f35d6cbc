//go:build linux || darwin

package lasterr

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/matryer/is"
)

func TestCaptureFromFailedCall(t *testing.T) {
	is := is.New(t)
	_, err := os.Open(filepath.Join(t.TempDir(), "missing"))
	le := Capture(err)

	is.Equal(le.Code(), uint32(syscall.ENOENT))
	is.True(!le.Success())
	is.True(strings.HasPrefix(le.Describe(), "ENOENT: "))
	is.Equal(le.String(), "2: "+le.Describe())
}

func TestCaptureIsStable(t *testing.T) {
	is := is.New(t)
	err := &os.PathError{Op: "open", Path: "x", Err: syscall.EACCES}

	a := Capture(err)
	b := Capture(err)
	is.Equal(a.Code(), b.Code())
	is.Equal(a.Describe(), a.Describe())
}

func TestCaptureWithoutErrno(t *testing.T) {
	is := is.New(t)
	is.True(Capture(nil).Success())
	is.True(Capture(errors.New("plain")).Success())
	is.Equal(Capture(nil).Describe(), "success")
}

func TestDescribeUnknownCode(t *testing.T) {
	is := is.New(t)
	is.Equal(Describe(54321), "unknown error 54321")
}
