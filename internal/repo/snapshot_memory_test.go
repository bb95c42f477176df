package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

func TestMemorySnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	newSnapshot := func(id string, expiresAt time.Time) *model.Snapshot {
		return &model.Snapshot{
			ID:         id,
			Characters: []model.CharacterRecord{{Code: "char_002_amiya", Potential: 1, Level: 1, Skill: 7}},
			CreatedAt:  now,
			ExpiresAt:  expiresAt,
		}
	}

	t.Run("CreatesAndGets", func(t *testing.T) {
		r := NewMemorySnapshot()
		require.NoError(t, r.CreateSnapshot(ctx, newSnapshot("abcdef", now.Add(time.Hour))))

		got, err := r.GetSnapshotByID(ctx, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, "char_002_amiya", got.Characters[0].Code)

		exists, err := r.SnapshotExists(ctx, "abcdef")
		require.NoError(t, err)
		assert.True(t, exists)

		assert.Error(t, r.CreateSnapshot(ctx, newSnapshot("abcdef", now)), "expect duplicate identifier to be rejected")
	})

	t.Run("ReturnsNotFound", func(t *testing.T) {
		r := NewMemorySnapshot()
		_, err := r.GetSnapshotByID(ctx, "nope")
		assert.ErrorIs(t, err, apierr.ErrNotFound)
		assert.ErrorIs(t, r.UpdateSnapshot(ctx, newSnapshot("nope", now)), apierr.ErrNotFound)
	})

	t.Run("UpdateKeepsCreatedAt", func(t *testing.T) {
		r := NewMemorySnapshot()
		require.NoError(t, r.CreateSnapshot(ctx, newSnapshot("abcdef", now.Add(time.Hour))))

		later := now.Add(time.Minute)
		update := &model.Snapshot{
			ID:         "abcdef",
			Characters: []model.CharacterRecord{{Code: "char_103_angel"}},
			CreatedAt:  later,
			UpdatedAt:  &later,
			ExpiresAt:  later.Add(time.Hour),
		}
		require.NoError(t, r.UpdateSnapshot(ctx, update))

		got, err := r.GetSnapshotByID(ctx, "abcdef")
		require.NoError(t, err)
		assert.Equal(t, now, got.CreatedAt)
		assert.Equal(t, later, *got.UpdatedAt)
		assert.Equal(t, "char_103_angel", got.Characters[0].Code)
	})

	t.Run("DeletesOnlyStrictlyExpired", func(t *testing.T) {
		r := NewMemorySnapshot()
		require.NoError(t, r.CreateSnapshot(ctx, newSnapshot("past", now.Add(-time.Second))))
		require.NoError(t, r.CreateSnapshot(ctx, newSnapshot("exact", now)))
		require.NoError(t, r.CreateSnapshot(ctx, newSnapshot("future", now.Add(time.Second))))

		n, err := r.DeleteExpiredSnapshots(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		for id, want := range map[string]bool{"past": false, "exact": true, "future": true} {
			exists, err := r.SnapshotExists(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, want, exists, "existence of %s", id)
		}
	})
}
