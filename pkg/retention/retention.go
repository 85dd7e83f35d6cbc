package retention

import (
	"context"
	"fmt"
	"time"

	"guarantor/pkg/dump"

	"github.com/fr-str/log"
	"github.com/go-co-op/gocron/v2"
)

func retentionErr(msg string, vars ...any) error {
	return fmt.Errorf("retention: "+msg+": %w", vars...)
}

// Forgetter drops pruned dumps from an index.
type Forgetter interface {
	Delete(ctx context.Context, names ...string) error
}

// Pruner removes dumps older than MaxAge from Dir.
type Pruner struct {
	Dir    string
	MaxAge time.Duration
	Index  Forgetter
	Now    func() time.Time
}

// Prune removes expired dumps once and returns their names.
func (p Pruner) Prune(ctx context.Context) ([]string, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	removed, err := dump.Prune(p.Dir, now.Add(-p.MaxAge))
	if len(removed) > 0 && p.Index != nil {
		if ierr := p.Index.Delete(ctx, removed...); ierr != nil {
			log.Error("failed to forget pruned dumps", log.Err(ierr))
		}
	}
	if err != nil {
		return removed, retentionErr("prune", err)
	}
	if len(removed) > 0 {
		log.Info("pruned dumps", log.Any("count", len(removed)), log.String("dir", dump.ResolveDirectory(p.Dir)))
	}
	return removed, nil
}

// Start runs Prune every interval until ctx is done.
func (p Pruner) Start(ctx context.Context, every time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, retentionErr("new scheduler", err)
	}

	j, err := s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if _, err := p.Prune(ctx); err != nil {
				log.Error(err.Error())
			}
		}),
		gocron.WithName("prune-dumps"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, retentionErr("new job", err)
	}
	log.Trace(j.Name())
	s.Start()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			log.Error(err.Error())
		}
	}()
	return s, nil
}
