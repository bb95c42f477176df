package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	modelcache "exusiai.dev/roster-backend/internal/model/cache"
	"exusiai.dev/roster-backend/internal/repo"
)

var (
	ErrStorageNotReachable = errors.New("storage not reachable")
	ErrRedisNotReachable   = errors.New("redis not reachable")
)

type Health struct {
	Store repo.SnapshotStore
	Cache *modelcache.SnapshotByID
}

func NewHealth(store repo.SnapshotStore, snapshotCache *modelcache.SnapshotByID) *Health {
	return &Health{
		Store: store,
		Cache: snapshotCache,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.Store.Ping(ctx); err != nil {
			return errors.Wrap(ErrStorageNotReachable, err.Error())
		}
		return nil
	})

	// a disabled cache always pings fine
	eg.Go(func() error {
		if err := s.Cache.Ping(ctx); err != nil {
			return errors.Wrap(ErrRedisNotReachable, err.Error())
		}
		return nil
	})

	return eg.Wait()
}
