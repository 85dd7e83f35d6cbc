package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"guarantor/pkg/db"
	"guarantor/pkg/dump"

	"github.com/fr-str/log"
)

// Index is the part of *db.Index the routes read.
type Index interface {
	List(ctx context.Context) ([]db.Entry, error)
	Get(ctx context.Context, name string) (db.Entry, error)
}

type dumpJSON struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	PID       int64     `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
	Condition string    `json:"condition"`
	MirrorKey string    `json:"mirror_key,omitempty"`
}

func Routes(index Index) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dumps", func(w http.ResponseWriter, r *http.Request) {
		entries, err := index.List(r.Context())
		if err != nil {
			log.Error(err.Error())
			http.Error(w, "failed to list dumps", http.StatusInternalServerError)
			return
		}

		out := make([]dumpJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, dumpJSON{
				Name:      e.Name,
				Path:      e.Path,
				Size:      e.Size,
				PID:       e.PID,
				CreatedAt: e.CreatedAt.Time,
				Condition: e.Condition,
				MirrorKey: e.MirrorKey.String,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			log.Error(err.Error())
		}
	})

	mux.HandleFunc("GET /api/dumps/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if !dump.IsDumpName(name) {
			http.Error(w, "invalid dump name", http.StatusBadRequest)
			return
		}

		e, err := index.Get(r.Context(), name)
		if errors.Is(err, db.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Error(err.Error())
			http.Error(w, "failed to get dump", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		http.ServeFile(w, r, e.Path)
	})

	return mux
}

// StartServer serves Routes on addr until ctx is done.
func StartServer(ctx context.Context, addr string, index Index) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Routes(index),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("starting server", log.String("addr", addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err.Error())
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err.Error())
		}
	}()
	return srv
}
