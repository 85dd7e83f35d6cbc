package dump

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"runtime/pprof"
	"time"
)

// StackWriter is the default Writer: a short header, the diagnostic and the
// stacks of all goroutines.
type StackWriter struct{}

func (StackWriter) WriteDump(w io.Writer, info Info) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "time: %s\n", info.Time.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(bw, "pid: %d\n", info.PID)
	fmt.Fprintf(bw, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(bw, "goroutines: %d\n\n", runtime.NumGoroutine())
	bw.WriteString(info.Diagnostic)
	bw.WriteString("\n")

	if err := pprof.Lookup("goroutine").WriteTo(bw, 2); err != nil {
		return err
	}
	return bw.Flush()
}
