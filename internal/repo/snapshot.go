package repo

import (
	"context"
	"time"

	"exusiai.dev/roster-backend/internal/model"
)

// SnapshotStore persists snapshots keyed by their identifier.
//
// Lookups of unknown identifiers return apierr.ErrNotFound. None of the
// operations are transactional with respect to each other.
type SnapshotStore interface {
	GetSnapshotByID(ctx context.Context, id string) (*model.Snapshot, error)
	SnapshotExists(ctx context.Context, id string) (bool, error)

	// CreateSnapshot inserts a new snapshot and fails if the identifier is taken.
	CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error

	// UpdateSnapshot replaces characters, updatedAt and expiresAt of the snapshot
	// stored under snapshot.ID. CreatedAt is left untouched.
	UpdateSnapshot(ctx context.Context, snapshot *model.Snapshot) error

	// DeleteExpiredSnapshots deletes, in one atomic operation, every snapshot whose
	// expiresAt is strictly before now, and returns how many were deleted. A standalone
	// MongoDB cannot run transactions; there a failed sweep may leave part of the
	// expired snapshots behind for the next sweep.
	DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int, error)

	Ping(ctx context.Context) error
}
