//go:build debug

package ensure

// Debug returns a record when cond fails. Requiring it halts the program.
func Debug(cond bool, condText string) *Guarantor {
	if cond {
		return nil
	}
	return beginAtCaller(Check, condText, 2)
}
