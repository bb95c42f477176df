package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/model"
	modelcache "exusiai.dev/roster-backend/internal/model/cache"
	"exusiai.dev/roster-backend/internal/repo"
)

func newCachedTestSnapshot(t *testing.T, store repo.SnapshotStore, opts ...func(*appconfig.Config)) (*Snapshot, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, now := newTestSnapshot(t, store, opts...)
	s.Cache = modelcache.NewSnapshotByID(client)
	return s, mr, now
}

func cacheKey(id string) string {
	return "snapshot#id:" + id
}

func TestSnapshotGetReadThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("SecondGetIsServedFromCache", func(t *testing.T) {
		store := repo.NewMemorySnapshot()
		s, mr, now := newCachedTestSnapshot(t, store)

		res, err := s.Save(ctx, "", payload(t, `{"Code":"char_002_amiya","Potential":3}`))
		require.NoError(t, err)
		assert.False(t, mr.Exists(cacheKey(res.ID)), "saving does not populate the cache")

		first, err := s.Get(ctx, res.ID)
		require.NoError(t, err)
		require.True(t, mr.Exists(cacheKey(res.ID)))
		assert.Equal(t, time.Hour, mr.TTL(cacheKey(res.ID)))

		// the storage copy is gone; only the cache can answer
		_, err = store.DeleteExpiredSnapshots(ctx, now.Add(ttl+time.Second))
		require.NoError(t, err)

		second, err := s.Get(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.ID, second.ID)
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
		assert.True(t, first.ExpiresAt.Equal(second.ExpiresAt))
		require.Len(t, second.Characters, 1)
		assert.Equal(t, 3, second.Characters[0].Potential)
	})

	t.Run("UpdateInvalidatesCachedSnapshot", func(t *testing.T) {
		store := repo.NewMemorySnapshot()
		s, mr, _ := newCachedTestSnapshot(t, store)

		res, err := s.Save(ctx, "", payload(t, `{"Code":"A"}`))
		require.NoError(t, err)
		_, err = s.Get(ctx, res.ID)
		require.NoError(t, err)
		require.True(t, mr.Exists(cacheKey(res.ID)))

		updated, err := s.Save(ctx, res.ID, payload(t, `{"Code":"B"}`))
		require.NoError(t, err)
		require.Equal(t, SaveOutcomeUpdated, updated.Outcome)
		assert.False(t, mr.Exists(cacheKey(res.ID)), "update deletes the cached entry")

		got, err := s.Get(ctx, res.ID)
		require.NoError(t, err)
		require.Len(t, got.Characters, 1)
		assert.Equal(t, "B", got.Characters[0].Code)
	})

	t.Run("TTLIsCappedByExpiry", func(t *testing.T) {
		store := repo.NewMemorySnapshot()
		s, mr, _ := newCachedTestSnapshot(t, store, func(c *appconfig.Config) {
			c.SnapshotTTL = 20 * time.Minute
		})

		res, err := s.Save(ctx, "", payload(t, `{"Code":"A"}`))
		require.NoError(t, err)
		_, err = s.Get(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, 20*time.Minute, mr.TTL(cacheKey(res.ID)))
	})

	t.Run("ExpiredSnapshotIsNotCached", func(t *testing.T) {
		store := repo.NewMemorySnapshot()
		s, mr, now := newCachedTestSnapshot(t, store)

		require.NoError(t, store.CreateSnapshot(ctx, &model.Snapshot{
			ID:         "stale1",
			Characters: []model.CharacterRecord{{Code: "A"}},
			CreatedAt:  now.Add(-ttl),
			ExpiresAt:  now.Add(-time.Minute),
		}))

		_, err := s.Get(ctx, "stale1")
		require.NoError(t, err)
		assert.False(t, mr.Exists(cacheKey("stale1")))
	})

	t.Run("HitAndMissRenderIdentically", func(t *testing.T) {
		store := repo.NewMemorySnapshot()
		s, _, now := newCachedTestSnapshot(t, store)

		tokyo := time.FixedZone("JST", 9*60*60)
		updatedAt := now.Add(time.Minute).In(tokyo)
		require.NoError(t, store.CreateSnapshot(ctx, &model.Snapshot{
			ID:         "tokyo1",
			Characters: []model.CharacterRecord{{Code: "A"}},
			CreatedAt:  now.Add(123456789 * time.Nanosecond).In(tokyo),
			UpdatedAt:  &updatedAt,
			ExpiresAt:  now.Add(ttl).In(tokyo),
		}))

		miss, err := s.Get(ctx, "tokyo1")
		require.NoError(t, err)
		hit, err := s.Get(ctx, "tokyo1")
		require.NoError(t, err)

		missJSON, err := json.Marshal(miss)
		require.NoError(t, err)
		hitJSON, err := json.Marshal(hit)
		require.NoError(t, err)
		assert.JSONEq(t, string(missJSON), string(hitJSON))
		assert.Contains(t, string(hitJSON), `"createdAt":"2024-01-01T12:00:00.123456789Z"`)
		assert.Equal(t, time.UTC, hit.CreatedAt.Location())
	})
}
