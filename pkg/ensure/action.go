package ensure

// Action is the escalation policy picked at a call site.
type Action uint8

const (
	// Check is active in debug builds only and halts on failure.
	Check Action = iota
	// Raise returns a *Violation carrying the rendered diagnostic.
	Raise
	// RaiseWithDump writes a postmortem dump before raising.
	RaiseWithDump
)

func (a Action) String() string {
	switch a {
	case Check:
		return "CHECK"
	case Raise:
		return "RAISE"
	case RaiseWithDump:
		return "RAISE_WITH_DUMP"
	}
	return "UNKNOWN"
}

// NotReached is a condition that never holds, for branches that must not execute.
//
//	ensure.That(ensure.Raise, ensure.NotReached(), "unknown opcode").Capture("op", op).Require()
func NotReached() bool {
	return false
}
