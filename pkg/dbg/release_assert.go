//go:build !debug

package dbg

// Enabled is true when built with -tags debug.
const Enabled = false

// Assert compiles to nothing without the debug tag.
func Assert(cond bool, msg ...any) {}
