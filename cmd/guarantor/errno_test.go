package main

import (
	"bytes"
	"strings"
	"testing"

	"guarantor/pkg/lasterr"

	"github.com/matryer/is"
)

func TestErrnoCommand(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	errnoCmd.SetOut(&out)

	is.NoErr(errnoCmd.RunE(errnoCmd, []string{"0x2"}))
	is.Equal(strings.TrimSpace(out.String()), lasterr.Describe(2))

	is.True(errnoCmd.RunE(errnoCmd, []string{"two"}) != nil)
}
