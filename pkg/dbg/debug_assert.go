//go:build debug

package dbg

import "fmt"

// Enabled is true when built with -tags debug.
const Enabled = true

func Assert(cond bool, msg ...any) {
	if !cond {
		if len(msg) > 0 {
			panic(fmt.Sprint(msg...))
		}
		panic("cond failed")
	}
}
