package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/pkg/cache"
)

// SnapshotByID caches model.Snapshot values keyed by snapshot identifier. Cached
// snapshots always carry UTC times so a hit renders exactly like a miss.
type SnapshotByID struct {
	set *cache.Set
}

func NewSnapshotByID(client *redis.Client) *SnapshotByID {
	return &SnapshotByID{
		set: cache.NewSet(client, "snapshot#id"),
	}
}

// Get returns cache.ErrMiss when id is not cached or caching is disabled.
func (c *SnapshotByID) Get(ctx context.Context, id string) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := c.set.Get(ctx, id, &snapshot); err != nil {
		return nil, err
	}
	snapshot.ID = id
	return snapshot.InUTC(), nil
}

func (c *SnapshotByID) Set(ctx context.Context, snapshot *model.Snapshot, expire time.Duration) error {
	return c.set.Set(ctx, snapshot.ID, snapshot.InUTC(), expire)
}

func (c *SnapshotByID) Delete(ctx context.Context, id string) error {
	return c.set.Delete(ctx, id)
}

func (c *SnapshotByID) Ping(ctx context.Context) error {
	return c.set.Ping(ctx)
}
