package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fr-str/log"
	"github.com/google/uuid"
)

const (
	Prefix = "dump-"
	Ext    = ".dmp"

	nameTimeLayout = "20060102T150405.000000000Z"
)

func dumpErr(msg string, vars ...any) error {
	return fmt.Errorf("dump: "+msg+": %w", vars...)
}

// Info is what a Writer gets to serialize.
type Info struct {
	Time       time.Time
	PID        int
	Diagnostic string
}

// Writer serializes process state into a dump file.
type Writer interface {
	WriteDump(w io.Writer, info Info) error
}

type WriterFunc func(w io.Writer, info Info) error

func (f WriterFunc) WriteDump(w io.Writer, info Info) error {
	return f(w, info)
}

// Artifact describes a dump file on disk.
type Artifact struct {
	Name       string
	Path       string
	Size       int64
	CreatedAt  time.Time
	PID        int
	Diagnostic string
}

// Sink post-processes a freshly written artifact (index, mirror, notify).
type Sink interface {
	Store(ctx context.Context, a Artifact) error
}

type SinkFunc func(ctx context.Context, a Artifact) error

func (f SinkFunc) Store(ctx context.Context, a Artifact) error {
	return f(ctx, a)
}

// Coordinator decides where a dump goes and runs the Writer and Sinks.
type Coordinator struct {
	// Dir overrides the storage directory; empty means the working directory.
	Dir    string
	Writer Writer
	Sinks  []Sink
	Now    func() time.Time
}

func NewCoordinator(dir string, sinks ...Sink) *Coordinator {
	return &Coordinator{
		Dir:    dir,
		Writer: StackWriter{},
		Sinks:  sinks,
	}
}

// ResolveDirectory returns override, or the working directory when it is empty.
func ResolveDirectory(override string) string {
	if override != "" {
		return override
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// FileName builds a dump name that does not depend on the caller:
// UTC timestamp, pid and a random suffix.
func FileName(t time.Time, pid int) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s%s-%d-%s%s", Prefix, t.UTC().Format(nameTimeLayout), pid, suffix, Ext)
}

// Capture writes a dump and returns its path. The returned error may be
// non-nil together with a path: the dump exists but a sink failed.
func (c *Coordinator) Capture(ctx context.Context, diagnostic string) (string, error) {
	dir := ResolveDirectory(c.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", dumpErr("create dir %s", dir, err)
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	pid := os.Getpid()
	path := filepath.Join(dir, FileName(now, pid))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", dumpErr("create %s", path, err)
	}

	w := c.Writer
	if w == nil {
		w = StackWriter{}
	}
	info := Info{Time: now, PID: pid, Diagnostic: diagnostic}
	err = errors.Join(w.WriteDump(f, info), f.Close())
	if err != nil {
		os.Remove(path)
		return "", dumpErr("write %s", path, err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", dumpErr("stat %s", path, err)
	}
	log.Info("dump written", log.String("path", path), log.Any("size", st.Size()))

	a := Artifact{
		Name:       filepath.Base(path),
		Path:       path,
		Size:       st.Size(),
		CreatedAt:  now,
		PID:        pid,
		Diagnostic: diagnostic,
	}
	var sinkErrs []error
	for _, s := range c.Sinks {
		if err := s.Store(ctx, a); err != nil {
			log.Error("dump sink failed", log.String("path", path), log.Err(err))
			sinkErrs = append(sinkErrs, err)
		}
	}
	if len(sinkErrs) > 0 {
		return path, dumpErr("sinks for %s", path, errors.Join(sinkErrs...))
	}
	return path, nil
}
