package ensure

import (
	"runtime"
	"strconv"
	"strings"

	"guarantor/pkg/dbg"
)

// Capture is one checked variable of a failed condition.
type Capture struct {
	Name  string
	Value string
}

// Guarantor collects the evidence for one failed condition.
//
// A nil *Guarantor stands for a condition that held: every method on it is a
// no-op and Require returns nil. A Guarantor belongs to the goroutine that
// created it and is consumed by the first Require call.
type Guarantor struct {
	action   Action
	cond     string
	file     string
	line     int
	captures []Capture
	messages []string

	done   bool
	result error
}

// Begin starts a record for a condition that is known to have failed.
func Begin(action Action, condText, file string, line int) *Guarantor {
	return &Guarantor{
		action: action,
		cond:   condText,
		file:   file,
		line:   line,
	}
}

// That returns nil when cond holds, or when action is Check in a build
// without the debug tag. Otherwise it returns a record located at the caller.
func That(action Action, cond bool, condText string) *Guarantor {
	if cond || (action == Check && !dbg.Enabled) {
		return nil
	}
	return beginAtCaller(action, condText, 2)
}

func beginAtCaller(action Action, condText string, skip int) *Guarantor {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "???", 0
	}
	return Begin(action, condText, file, line)
}

// Capture renders value and appends it under name. Duplicates are kept.
func (g *Guarantor) Capture(name string, value any) *Guarantor {
	if g == nil {
		return nil
	}
	g.captures = append(g.captures, Capture{Name: name, Value: render(value)})
	return g
}

// WithMessage appends a free-form line rendered after the captures.
func (g *Guarantor) WithMessage(text string) *Guarantor {
	if g == nil {
		return nil
	}
	g.messages = append(g.messages, text)
	return g
}

func (g *Guarantor) Action() Action {
	if g == nil {
		return Check
	}
	return g.action
}

func (g *Guarantor) Captures() []Capture {
	if g == nil {
		return nil
	}
	return append([]Capture(nil), g.captures...)
}

// Render produces the diagnostic text. Tooling parses this layout:
//
//	Failed: <condition text>
//	File: <file> Line: <line>
//	Checked Variables:
//	    <name> = <value>
//	Extra Message: <text>
func (g *Guarantor) Render() string {
	if g == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Failed: ")
	b.WriteString(g.cond)
	b.WriteString("\nFile: ")
	b.WriteString(g.file)
	b.WriteString(" Line: ")
	b.WriteString(strconv.Itoa(g.line))
	b.WriteString("\nChecked Variables:\n")
	for _, c := range g.captures {
		b.WriteString("    ")
		b.WriteString(c.Name)
		b.WriteString(" = ")
		b.WriteString(c.Value)
		b.WriteByte('\n')
	}
	for _, m := range g.messages {
		b.WriteString("Extra Message: ")
		b.WriteString(m)
		b.WriteByte('\n')
	}
	return b.String()
}
