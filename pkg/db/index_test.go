package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"guarantor/pkg/dump"

	"github.com/matryer/is"
)

func connect(t *testing.T) *Index {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	x, err := ConnectIndex(ctx, filepath.Join(t.TempDir(), "dumps.db"))
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func TestIndexStoreAndGet(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	x := connect(t)

	created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	a := dump.Artifact{
		Name:       "dump-a.dmp",
		Path:       "/tmp/dump-a.dmp",
		Size:       10,
		PID:        7,
		CreatedAt:  created,
		Diagnostic: "Failed: x > 0\nFile: calc.cc Line: 42\nChecked Variables:\n    x = -5\n",
	}
	is.NoErr(x.Store(ctx, a))

	e, err := x.Get(ctx, "dump-a.dmp")
	is.NoErr(err)
	is.Equal(e.Path, a.Path)
	is.Equal(e.PID, int64(7))
	is.Equal(e.Condition, "x > 0")
	is.True(e.CreatedAt.Equal(created))
	is.True(!e.MirrorKey.Valid)

	_, err = x.Get(ctx, "missing")
	is.True(errors.Is(err, ErrNotFound))
}

func TestIndexListNewestFirstAndDelete(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	x := connect(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"dump-1.dmp", "dump-2.dmp", "dump-3.dmp"} {
		is.NoErr(x.Store(ctx, dump.Artifact{Name: name, Path: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	list, err := x.List(ctx)
	is.NoErr(err)
	is.Equal(len(list), 3)
	is.Equal(list[0].Name, "dump-3.dmp")

	is.NoErr(x.Delete(ctx, "dump-1.dmp", "nope"))
	list, err = x.List(ctx)
	is.NoErr(err)
	is.Equal(len(list), 2)
}

func TestIndexMirrorKey(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	x := connect(t)

	is.NoErr(x.Store(ctx, dump.Artifact{Name: "dump-1.dmp", Path: "p", CreatedAt: time.Now()}))
	pending, err := x.Unmirrored(ctx)
	is.NoErr(err)
	is.Equal(len(pending), 1)

	is.NoErr(x.SetMirrorKey(ctx, "dump-1.dmp", "host/dump-1.dmp"))
	pending, err = x.Unmirrored(ctx)
	is.NoErr(err)
	is.Equal(len(pending), 0)

	e, err := x.Get(ctx, "dump-1.dmp")
	is.NoErr(err)
	is.Equal(e.MirrorKey.String, "host/dump-1.dmp")
}

func TestCondition(t *testing.T) {
	is := is.New(t)
	is.Equal(Condition("Failed: a == b\nFile: f Line: 1\n"), "a == b")
	is.Equal(Condition("garbage"), "")
}
