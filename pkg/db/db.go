package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	migrations "guarantor/db"

	"github.com/fr-str/log"
	"github.com/fr-str/log/level"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

func dbErr(msg string, vars ...any) error {
	return fmt.Errorf("db: "+msg+": %w", vars...)
}

func (s db) configure() {
	s.w.SetMaxOpenConns(1)
	s.w.SetConnMaxLifetime(0)
	s.w.SetConnMaxIdleTime(0)
}

// ConnectIndex opens the dump index at path and migrates it.
// The connection is closed when ctx is done or Close is called.
func ConnectIndex(ctx context.Context, path string) (*Index, error) {
	w, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dbErr("open %s", path, err)
	}

	goose.SetBaseFS(migrations.DumpIndex)
	if err := goose.SetDialect("sqlite3"); err != nil {
		w.Close()
		return nil, dbErr("goose dialect", err)
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, w, "migrations"); err != nil {
		w.Close()
		return nil, dbErr("migrate %s", path, err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"} {
		if _, err := w.ExecContext(ctx, pragma); err != nil {
			w.Close()
			return nil, dbErr("%s", pragma, err)
		}
	}

	d := db{
		w: w,
	}
	d.configure()

	go func() {
		<-ctx.Done()
		w.Close()
	}()
	return &Index{db: d}, nil
}

type db struct {
	w *sql.DB
}

func (s db) ExecContext(ctx context.Context, sql string, args ...any) (sql.Result, error) {
	ts := time.Now()
	res, err := s.w.ExecContext(ctx, sql, args...)
	logger(ctx, "ExecContext", sql, ts, args, res, err)
	return res, err
}

func (s db) QueryContext(ctx context.Context, sql string, args ...any) (*sql.Rows, error) {
	ts := time.Now()
	rows, err := s.w.QueryContext(ctx, sql, args...)
	logger(ctx, "QueryContext", sql, ts, args, nil, err)
	return rows, err
}

func (s db) QueryRowContext(ctx context.Context, sql string, args ...any) *sql.Row {
	ts := time.Now()
	row := s.w.QueryRowContext(ctx, sql, args...)
	logger(ctx, "QueryRowContext", sql, ts, args, nil, nil)
	return row
}

// relaceConsecutiveSpaces replaces consecutive spaces with a single space
func relaceConsecutiveSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func logger(ctx context.Context, info string, query string, ts time.Time, args any, res sql.Result, err error) {
	if !log.DefaultLogger.Logger.Enabled(ctx, level.Trace-1) {
		return
	}
	timeSince := time.Since(ts).String()
	query = strings.ReplaceAll(query, "\n", " ")
	query = strings.ReplaceAll(query, "\t", " ")
	query = relaceConsecutiveSpaces(query)
	meta := []any{
		log.String("query", query),
		log.Any("args", args),
		log.String("duration", timeSince),
	}

	if res != nil {
		rows, err := res.RowsAffected()
		if err != nil {
			meta = append(meta, log.String("rows_error", err.Error()))
			log.Error("Rows affected failed", meta...)
		}
		meta = append(meta, log.Any("rows", rows))
	}
	if err != nil {
		meta = append(meta, log.Err(err))
		e := &sqlite.Error{}
		if !errors.As(err, &e) {
			log.Error(fmt.Sprintf("%s failed", info), meta...)
			return
		}
	}
	log.DefaultLogger.Logger.Log(ctx, level.Trace-1, fmt.Sprintf("%s executed", info), meta...)
}
