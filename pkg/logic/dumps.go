package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"guarantor/pkg/db"

	"github.com/fr-str/log"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// MinRatio is the lowest score FindDumps reports.
const MinRatio = 60

type Match struct {
	Entry db.Entry
	Ratio int
}

// Lister is the part of the index FindDumps reads.
type Lister interface {
	List(ctx context.Context) ([]db.Entry, error)
}

// FindDumps ranks indexed dumps by how closely their failed condition
// matches query. Ties keep the newest dump first.
func FindDumps(ctx context.Context, index Lister, query string) ([]Match, error) {
	entries, err := index.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := Rank(entries, query)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no dump matches '%s'", query)
	}
	return matches, nil
}

func Rank(entries []db.Entry, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Match
	for _, e := range entries {
		cond := strings.ToLower(e.Condition)
		ratio := fuzzy.Ratio(query, cond)
		if partial := fuzzy.PartialRatio(query, cond); partial > ratio {
			ratio = partial
		}
		if ratio < MinRatio {
			continue
		}
		log.Debug("dump fuzzy match", log.Any("ratio", ratio), log.String("condition", e.Condition))
		out = append(out, Match{Entry: e, Ratio: ratio})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio > out[j].Ratio
	})
	return out
}
