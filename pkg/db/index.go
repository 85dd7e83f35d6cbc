package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"guarantor/pkg/db/types"
	"guarantor/pkg/dump"
)

// Index records every dump written by a coordinator it is attached to.
type Index struct {
	db db
}

// Entry is one indexed dump.
type Entry struct {
	Name       string
	Path       string
	Size       int64
	PID        int64
	CreatedAt  types.Time
	Condition  string
	Diagnostic string
	MirrorKey  sql.NullString
}

var ErrNotFound = errors.New("db: dump not found")

func (x *Index) Close() error {
	return x.db.w.Close()
}

// Store implements dump.Sink.
func (x *Index) Store(ctx context.Context, a dump.Artifact) error {
	_, err := x.db.ExecContext(ctx, `
		INSERT INTO dumps (name, path, size, pid, created_at, condition, diagnostic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			path = excluded.path,
			size = excluded.size,
			diagnostic = excluded.diagnostic`,
		a.Name, a.Path, a.Size, a.PID, types.Time{Time: a.CreatedAt},
		Condition(a.Diagnostic), a.Diagnostic,
	)
	if err != nil {
		return dbErr("store %s", a.Name, err)
	}
	return nil
}

// SetMirrorKey remembers where a dump was mirrored to.
func (x *Index) SetMirrorKey(ctx context.Context, name, key string) error {
	_, err := x.db.ExecContext(ctx, `UPDATE dumps SET mirror_key = ? WHERE name = ?`, key, name)
	if err != nil {
		return dbErr("set mirror key %s", name, err)
	}
	return nil
}

const selectEntry = `SELECT name, path, size, pid, created_at, condition, diagnostic, mirror_key FROM dumps`

func scanEntry(sc interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := sc.Scan(&e.Name, &e.Path, &e.Size, &e.PID, &e.CreatedAt, &e.Condition, &e.Diagnostic, &e.MirrorKey)
	return e, err
}

// List returns all entries, newest first.
func (x *Index) List(ctx context.Context) ([]Entry, error) {
	rows, err := x.db.QueryContext(ctx, selectEntry+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, dbErr("list", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dbErr("scan", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("list", err)
	}
	return out, nil
}

func (x *Index) Get(ctx context.Context, name string) (Entry, error) {
	e, err := scanEntry(x.db.QueryRowContext(ctx, selectEntry+` WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, dbErr("get %s", name, err)
	}
	return e, nil
}

// Unmirrored returns entries that have no mirror key yet, oldest first.
func (x *Index) Unmirrored(ctx context.Context) ([]Entry, error) {
	rows, err := x.db.QueryContext(ctx, selectEntry+` WHERE mirror_key IS NULL ORDER BY created_at ASC`)
	if err != nil {
		return nil, dbErr("unmirrored", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dbErr("scan", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete drops entries by name. Missing names are ignored.
func (x *Index) Delete(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := x.db.ExecContext(ctx, `DELETE FROM dumps WHERE name = ?`, name); err != nil {
			return dbErr("delete %s", name, err)
		}
	}
	return nil
}

// Condition extracts the condition text from a rendered diagnostic.
func Condition(diagnostic string) string {
	first, _, _ := strings.Cut(diagnostic, "\n")
	if c, ok := strings.CutPrefix(first, "Failed: "); ok {
		return c
	}
	return ""
}
