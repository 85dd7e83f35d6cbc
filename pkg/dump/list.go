package dump

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fr-str/log"
)

// IsDumpName reports whether name looks like a file written by Capture.
func IsDumpName(name string) bool {
	return strings.HasPrefix(name, Prefix) && strings.HasSuffix(name, Ext) && filepath.Base(name) == name
}

// List returns the dumps in dir, oldest first.
func List(dir string) ([]Artifact, error) {
	dir = ResolveDirectory(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, dumpErr("list %s", dir, err)
	}

	var out []Artifact
	for _, e := range entries {
		if e.IsDir() || !IsDumpName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Artifact{
			Name:      e.Name(),
			Path:      filepath.Join(dir, e.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Prune removes dumps in dir last modified before cutoff and returns their names.
func Prune(dir string, cutoff time.Time) ([]string, error) {
	arts, err := List(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	var errs []error
	for _, a := range arts {
		if !a.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(a.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Debug("pruned dump", log.String("path", a.Path))
		removed = append(removed, a.Name)
	}
	if len(errs) > 0 {
		return removed, dumpErr("prune %s", dir, errors.Join(errs...))
	}
	return removed, nil
}
