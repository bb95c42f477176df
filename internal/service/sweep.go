package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/pkg/observability"
	"exusiai.dev/roster-backend/internal/repo"
)

// Sweep deletes every snapshot that expired strictly before now and returns how many
// were deleted.
func Sweep(ctx context.Context, store repo.SnapshotStore, now time.Time) (int, error) {
	start := time.Now()
	defer func() {
		observability.SweepDuration.Set(time.Since(start).Seconds())
	}()

	deleted, err := store.DeleteExpiredSnapshots(ctx, now)
	if err != nil {
		log.Error().
			Str("evt.name", "sweep.failed").
			Err(err).
			Time("cutoff", now).
			Msg("failed to delete expired snapshots")
		return 0, errors.Wrap(err, "failed to delete expired snapshots")
	}

	observability.SweepDeleted.Add(float64(deleted))
	log.Info().
		Str("evt.name", "sweep.finished").
		Int("deleted", deleted).
		Time("cutoff", now).
		Msg("expired snapshots swept")

	return deleted, nil
}
