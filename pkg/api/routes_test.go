package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"guarantor/pkg/db"
	"guarantor/pkg/db/types"

	"github.com/matryer/is"
)

type fakeIndex map[string]db.Entry

func (f fakeIndex) List(ctx context.Context) ([]db.Entry, error) {
	var out []db.Entry
	for _, e := range f {
		out = append(out, e)
	}
	return out, nil
}

func (f fakeIndex) Get(ctx context.Context, name string) (db.Entry, error) {
	e, ok := f[name]
	if !ok {
		return db.Entry{}, db.ErrNotFound
	}
	return e, nil
}

func TestListDumps(t *testing.T) {
	is := is.New(t)
	created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	idx := fakeIndex{"dump-1.dmp": {Name: "dump-1.dmp", Path: "/d/dump-1.dmp", Condition: "x > 0", CreatedAt: types.Time{Time: created}}}

	rec := httptest.NewRecorder()
	Routes(idx).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dumps", nil))
	is.Equal(rec.Code, http.StatusOK)

	var got []dumpJSON
	is.NoErr(json.NewDecoder(rec.Body).Decode(&got))
	is.Equal(len(got), 1)
	is.Equal(got[0].Condition, "x > 0")
	is.True(got[0].CreatedAt.Equal(created))
}

func TestGetDump(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "dump-1.dmp")
	is.NoErr(os.WriteFile(path, []byte("Failed: x > 0\n"), 0o644))
	idx := fakeIndex{"dump-1.dmp": {Name: "dump-1.dmp", Path: path}}
	h := Routes(idx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dumps/dump-1.dmp", nil))
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Body.String(), "Failed: x > 0\n")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dumps/dump-2.dmp", nil))
	is.Equal(rec.Code, http.StatusNotFound)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dumps/passwd", nil))
	is.Equal(rec.Code, http.StatusBadRequest)
}
