package ensure

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guarantor/pkg/dump"

	"github.com/matryer/is"
)

func configure(t *testing.T, s Settings) {
	t.Helper()
	prev := Current()
	Configure(s)
	t.Cleanup(func() { Configure(prev) })
}

type ledgerError struct{ text string }

func (e *ledgerError) Error() string             { return e.text }
func (e *ledgerError) SetDiagnostic(text string) { e.text = text }

func TestRaiseReturnsViolation(t *testing.T) {
	is := is.New(t)
	configure(t, Settings{})

	x := -5
	g := Begin(Raise, "x > 0", "calc.cc", 42).Capture("x", x)
	err := g.Require()
	is.True(err != nil)
	is.True(errors.Is(err, ErrViolation))

	var v *Violation
	is.True(errors.As(err, &v))
	is.Equal(v.Message, g.Render())
	is.Equal(v.Action, Raise)
	is.Equal(v.DumpPath, "")
	is.True(strings.HasPrefix(err.Error(), "Failed: x > 0\n"))
}

func TestRequireDispatchesOnce(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	configure(t, Settings{DumpDir: dir})

	g := Begin(RaiseWithDump, "once", "f.go", 1)
	first := g.Require()
	second := g.Require()
	is.Equal(first, second)

	arts, err := dump.List(dir)
	is.NoErr(err)
	is.Equal(len(arts), 1)
}

func TestRequireMsgAppendsExtraMessage(t *testing.T) {
	is := is.New(t)
	configure(t, Settings{})

	err := Begin(Raise, "ok", "f.go", 3).RequireMsg("while loading config")
	is.True(strings.HasSuffix(err.Error(), "Extra Message: while loading config\n"))
}

func TestRequireAsRaisesKind(t *testing.T) {
	is := is.New(t)
	configure(t, Settings{})

	g := Begin(Raise, "balance >= 0", "ledger.go", 10).Capture("balance", -1)
	err := RequireAs[ledgerError](g)

	le, ok := err.(*ledgerError)
	is.True(ok)
	is.Equal(le.text, g.Render())
	is.True(RequireAs[ledgerError](nil) == nil)
}

func TestRequireAsWithDumpWrapsKind(t *testing.T) {
	is := is.New(t)
	configure(t, Settings{DumpDir: t.TempDir()})

	err := RequireAs[ledgerError](Begin(RaiseWithDump, "ok", "f.go", 1))

	var le *ledgerError
	is.True(errors.As(err, &le))
	var v *Violation
	is.True(errors.As(err, &v))
	is.True(v.DumpPath != "")
	is.True(errors.Is(err, ErrViolation))
}

func TestRaiseWithDumpUsesWorkingDirectory(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Chdir(dir)
	configure(t, Settings{})

	err := Begin(RaiseWithDump, "x > 0", "calc.cc", 42).Capture("x", -5).Require()

	var v *Violation
	is.True(errors.As(err, &v))
	is.NoErr(v.DumpErr)
	is.Equal(filepath.Dir(v.DumpPath), dir)

	b, rerr := os.ReadFile(v.DumpPath)
	is.NoErr(rerr)
	is.True(strings.Contains(string(b), "    x = -5"))
}

func TestRaiseWithDumpSurvivesDumpFailure(t *testing.T) {
	is := is.New(t)
	boom := errors.New("dump backend down")
	configure(t, Settings{Dumper: &dump.Coordinator{
		Dir: t.TempDir(),
		Writer: dump.WriterFunc(func(w io.Writer, info dump.Info) error {
			return boom
		}),
	}})

	g := Begin(RaiseWithDump, "x > 0", "calc.cc", 42).Capture("x", -5)
	err := g.Require()

	var v *Violation
	is.True(errors.As(err, &v))
	is.Equal(v.Message, g.Render())
	is.Equal(v.DumpPath, "")
	is.True(errors.Is(v.DumpErr, boom))
	is.True(!errors.Is(err, boom))
}

func TestRaiseWithDumpRunsSinks(t *testing.T) {
	is := is.New(t)
	var got dump.Artifact
	configure(t, Settings{Dumper: dump.NewCoordinator(t.TempDir(),
		dump.SinkFunc(func(ctx context.Context, a dump.Artifact) error {
			got = a
			return nil
		}),
	)})

	err := Begin(RaiseWithDump, "ready", "f.go", 5).Require()

	var v *Violation
	is.True(errors.As(err, &v))
	is.Equal(got.Path, v.DumpPath)
	is.Equal(got.Diagnostic, v.Message)
}

func TestDefaultSettings(t *testing.T) {
	is := is.New(t)
	s := DefaultSettings()
	is.True(s.AlwaysCheckInDebug)
	is.Equal(s.DumpDir, "")
	is.True(s.coordinator() != nil)
}
