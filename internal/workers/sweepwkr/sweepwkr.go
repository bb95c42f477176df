package sweepwkr

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/app/appcontext"
	"exusiai.dev/roster-backend/internal/repo"
	"exusiai.dev/roster-backend/internal/service"
)

const lockName = "mutex:sweep"

type WorkerDeps struct {
	fx.In
	Store  repo.SnapshotStore
	Locker *redsync.Redsync `optional:"true"`
}

type Worker struct {
	// count counts sweeps the worker has attempted so far
	count int

	// loc is the time zone whose midnight triggers a sweep
	loc *time.Location

	// lock is nil when redis is disabled, in which case every replica sweeps
	lock *redsync.Mutex

	now func() time.Time

	WorkerDeps
}

func New(conf *appconfig.Config, deps WorkerDeps) *Worker {
	w := &Worker{
		loc:        conf.SweepTimezone.Location,
		now:        time.Now,
		WorkerDeps: deps,
	}
	if w.loc == nil {
		w.loc = time.UTC
	}
	if deps.Locker != nil {
		w.lock = deps.Locker.NewMutex(lockName, redsync.WithExpiry(conf.SweepLockExpiry), redsync.WithTries(1))
	}
	return w
}

func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if !conf.SweepEnabled || conf.AppContext.Env != appcontext.EnvServer {
		log.Info().
			Str("evt.name", "worker.sweep.disabled").
			Msg("expiry sweep is disabled in this process")
		return
	}

	w := New(conf, deps)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go w.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// Run sweeps at every midnight of the worker's time zone until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		next := NextRun(w.now(), w.loc)
		log.Debug().
			Str("evt.name", "worker.sweep.scheduled").
			Time("next", next).
			Msg("next expiry sweep scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		w.SweepOnce(ctx)
	}
}

// SweepOnce runs a single sweep unless another replica holds the sweep lock.
// The lock is not released afterwards: it expires on its own, so replicas that
// fire later within the same window skip instead of sweeping again.
func (w *Worker) SweepOnce(ctx context.Context) {
	w.count++

	if w.lock != nil {
		if err := w.lock.LockContext(ctx); err != nil {
			log.Info().
				Str("evt.name", "worker.sweep.skipped").
				Err(err).
				Msg("sweep lock held elsewhere, skipping")
			return
		}
	}

	// errors are logged by service.Sweep
	_, _ = service.Sweep(ctx, w.Store, w.now())
}

func (w *Worker) Count() int {
	return w.count
}

// NextRun returns the first midnight in loc strictly after now.
func NextRun(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
