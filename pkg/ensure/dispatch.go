package ensure

import (
	"context"

	"guarantor/pkg/dbg"

	"github.com/fr-str/log"
)

// Require dispatches the record according to its action. It returns nil for
// a nil record, a *Violation for Raise and RaiseWithDump, and halts for
// Check in debug builds. A second call returns the first outcome.
func (g *Guarantor) Require() error {
	if g == nil {
		return nil
	}
	if g.done {
		return g.result
	}
	g.done = true
	if v := dispatch(g, nil); v != nil {
		g.result = v
	}
	return g.result
}

// RequireMsg appends msg as an extra message and dispatches.
func (g *Guarantor) RequireMsg(msg string) error {
	return g.WithMessage(msg).Require()
}

// RequireAs dispatches like Require but raises an error of kind P. For Raise
// the P value is returned as is; for RaiseWithDump it is wrapped in the
// *Violation that carries the dump path, so errors.As finds it either way.
func RequireAs[E any, P Kind[E]](g *Guarantor) error {
	if g == nil {
		return nil
	}
	if g.done {
		return g.result
	}
	g.done = true

	p := P(new(E))
	p.SetDiagnostic(g.Render())
	v := dispatch(g, p)
	switch {
	case v == nil:
	case g.action == Raise:
		g.result = p
	default:
		g.result = v
	}
	return g.result
}

func dispatch(g *Guarantor, kind error) *Violation {
	if g.action == Check && !dbg.Enabled {
		return nil
	}

	s := Current()
	v := &Violation{
		Message: g.Render(),
		Action:  g.action,
		kind:    kind,
	}

	switch g.action {
	case Check:
		log.Error("ensure: check failed", log.String("diagnostic", v.Message))
		s.halt(v)
		return v
	case RaiseWithDump:
		if dbg.Enabled && s.AlwaysCheckInDebug {
			s.halt(v)
		}
		path, err := s.coordinator().Capture(context.Background(), v.Message)
		v.DumpPath = path
		if err != nil {
			log.Error("ensure: dump capture failed", log.Err(err))
			v.DumpErr = err
		}
		return v
	default:
		if dbg.Enabled && s.AlwaysCheckInDebug {
			s.halt(v)
		}
		return v
	}
}
