//go:build !debug

package ensure

import (
	"testing"

	"github.com/matryer/is"
)

func TestDebugIsNoopInRelease(t *testing.T) {
	is := is.New(t)
	halted := false
	configure(t, Settings{Halt: func(*Violation) { halted = true }})

	x := -5
	is.NoErr(Debug(x > 0, "x > 0").Capture("x", x).Require())
	is.NoErr(That(Check, x > 0, "x > 0").Require())
	is.NoErr(Begin(Check, "x > 0", "f.go", 1).Require())
	is.True(!halted)
}

func TestDebugDoesNotAllocateInRelease(t *testing.T) {
	is := is.New(t)
	ready := false
	allocs := testing.AllocsPerRun(100, func() {
		_ = Debug(ready, "ready").Capture("ready", ready).WithMessage("not ready").Require()
	})
	is.Equal(allocs, 0.0)
}

func TestRaiseDoesNotHaltInRelease(t *testing.T) {
	is := is.New(t)
	halted := false
	configure(t, Settings{AlwaysCheckInDebug: true, Halt: func(*Violation) { halted = true }})

	is.True(That(Raise, false, "false").Require() != nil)
	is.True(!halted)
}
