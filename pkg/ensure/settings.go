package ensure

import (
	"sync/atomic"

	"guarantor/pkg/dump"
)

// Settings is the process-wide configuration read by every failing check.
// Call Configure once during startup, before goroutines start checking;
// changing it while checks run is not supported.
type Settings struct {
	// AlwaysCheckInDebug makes a failing Raise or RaiseWithDump halt like a
	// Check first, in debug builds only. Tests usually turn it off to
	// observe the returned errors.
	AlwaysCheckInDebug bool
	// DumpDir overrides where dumps go; empty means the working directory.
	DumpDir string
	// Dumper replaces the default coordinator built from DumpDir.
	Dumper *dump.Coordinator
	// Halt stops execution for failed checks. nil panics with the *Violation.
	Halt func(v *Violation)
}

var settings atomic.Pointer[Settings]

// DefaultSettings is what a process gets without calling Configure.
func DefaultSettings() Settings {
	return Settings{AlwaysCheckInDebug: true}
}

func Configure(s Settings) {
	settings.Store(&s)
}

func Current() Settings {
	if s := settings.Load(); s != nil {
		return *s
	}
	return DefaultSettings()
}

func (s Settings) coordinator() *dump.Coordinator {
	if s.Dumper != nil {
		return s.Dumper
	}
	return dump.NewCoordinator(s.DumpDir)
}

func (s Settings) halt(v *Violation) {
	if s.Halt != nil {
		s.Halt(v)
		return
	}
	panic(v)
}
