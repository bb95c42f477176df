package repo

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

// MemorySnapshot keeps snapshots in process memory. It backs tests and local
// development; nothing survives a restart.
type MemorySnapshot struct {
	mu        sync.RWMutex
	snapshots map[string]model.Snapshot
}

var _ SnapshotStore = (*MemorySnapshot)(nil)

func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{
		snapshots: make(map[string]model.Snapshot),
	}
}

func (r *MemorySnapshot) GetSnapshotByID(ctx context.Context, id string) (*model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snapshots[id]
	if !ok {
		return nil, apierr.ErrNotFound
	}
	return clone(s), nil
}

func (r *MemorySnapshot) SnapshotExists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.snapshots[id]
	return ok, nil
}

func (r *MemorySnapshot) CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snapshots[snapshot.ID]; ok {
		return errors.Errorf("snapshot %q already exists", snapshot.ID)
	}
	r.snapshots[snapshot.ID] = *clone(*snapshot)
	return nil
}

func (r *MemorySnapshot) UpdateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.snapshots[snapshot.ID]
	if !ok {
		return apierr.ErrNotFound
	}
	updated := clone(*snapshot)
	s.Characters = updated.Characters
	s.UpdatedAt = updated.UpdatedAt
	s.ExpiresAt = updated.ExpiresAt
	r.snapshots[snapshot.ID] = s
	return nil
}

func (r *MemorySnapshot) DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, s := range r.snapshots {
		if s.Expired(now) {
			delete(r.snapshots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemorySnapshot) Ping(ctx context.Context) error {
	return nil
}

func clone(s model.Snapshot) *model.Snapshot {
	s.Characters = append([]model.CharacterRecord(nil), s.Characters...)
	if s.UpdatedAt != nil {
		t := *s.UpdatedAt
		s.UpdatedAt = &t
	}
	return &s
}
