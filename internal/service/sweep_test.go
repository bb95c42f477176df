package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/repo"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := repo.NewMemorySnapshot()

	for id, expiresAt := range map[string]time.Time{
		"old1":  now.Add(-365 * 24 * time.Hour),
		"old2":  now.Add(-time.Nanosecond),
		"edge":  now,
		"fresh": now.Add(time.Minute),
	} {
		require.NoError(t, store.CreateSnapshot(ctx, &model.Snapshot{
			ID:         id,
			Characters: []model.CharacterRecord{{Code: id}},
			CreatedAt:  now.Add(-ttl),
			ExpiresAt:  expiresAt,
		}))
	}

	deleted, err := Sweep(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	for id, want := range map[string]bool{"old1": false, "old2": false, "edge": true, "fresh": true} {
		exists, err := store.SnapshotExists(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, exists, "snapshot %s", id)
	}

	t.Run("NothingToDelete", func(t *testing.T) {
		deleted, err := Sweep(ctx, store, now)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}

// interruptedStore fails its first sweep after deleting only the snapshots that expired
// more than two hours before the cutoff, like a Mongo DeleteMany cut off midway.
type interruptedStore struct {
	*repo.MemorySnapshot
	failures int
}

func (s *interruptedStore) DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int, error) {
	if s.failures == 0 {
		return s.MemorySnapshot.DeleteExpiredSnapshots(ctx, now)
	}
	s.failures--

	if _, err := s.MemorySnapshot.DeleteExpiredSnapshots(ctx, now.Add(-2*time.Hour)); err != nil {
		return 0, err
	}
	return 0, errors.New("connection reset by peer")
}

func TestSweepResumesAfterPartialFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &interruptedStore{MemorySnapshot: repo.NewMemorySnapshot(), failures: 1}

	for id, expiresAt := range map[string]time.Time{
		"old1":  now.Add(-3 * time.Hour),
		"old2":  now.Add(-time.Hour),
		"old3":  now.Add(-time.Minute),
		"fresh": now.Add(time.Hour),
	} {
		require.NoError(t, store.CreateSnapshot(ctx, &model.Snapshot{ID: id, ExpiresAt: expiresAt}))
	}

	_, err := Sweep(ctx, store, now)
	assert.ErrorContains(t, err, "connection reset by peer")

	exists, err := store.SnapshotExists(ctx, "old1")
	require.NoError(t, err)
	assert.False(t, exists, "the interrupted sweep already deleted a snapshot")

	deleted, err := Sweep(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted, "the next sweep deletes what is left")

	for id, want := range map[string]bool{"old2": false, "old3": false, "fresh": true} {
		exists, err := store.SnapshotExists(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, exists, "snapshot %s", id)
	}
}
