package ensure

import "errors"

// ErrViolation matches every error produced by a failed ensure via errors.Is.
var ErrViolation = errors.New("ensure: invariant violated")

// Violation is the error raised for a failed condition. Error returns the
// rendered diagnostic unchanged.
type Violation struct {
	Message string
	Action  Action
	// DumpPath is set when a RaiseWithDump wrote its artifact.
	DumpPath string
	// DumpErr is why the dump, or one of its sinks, failed. It never
	// replaces the violation itself.
	DumpErr error

	kind error
}

func (v *Violation) Error() string {
	return v.Message
}

func (v *Violation) Unwrap() []error {
	if v.kind != nil {
		return []error{ErrViolation, v.kind}
	}
	return []error{ErrViolation}
}

// Kind is an error type that can be built from a rendered diagnostic, so
// call sites can raise an error they know how to catch:
//
//	type ConfigError struct{ msg string }
//
//	func (e *ConfigError) Error() string             { return e.msg }
//	func (e *ConfigError) SetDiagnostic(text string) { e.msg = text }
//
//	err := ensure.RequireAs[ConfigError](ensure.That(ensure.Raise, ok, "ok"))
type Kind[E any] interface {
	*E
	error
	SetDiagnostic(text string)
}
