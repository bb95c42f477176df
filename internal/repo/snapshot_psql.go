package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/repo/selector"
)

type PostgresSnapshot struct {
	db  *bun.DB
	sel selector.S[model.Snapshot]
}

var _ SnapshotStore = (*PostgresSnapshot)(nil)

func NewPostgresSnapshot(db *bun.DB) (*PostgresSnapshot, error) {
	r := &PostgresSnapshot{
		db:  db,
		sel: selector.New[model.Snapshot](db),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *PostgresSnapshot) ensureSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.Snapshot)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create character_snapshots table")
	}

	_, err = r.db.NewCreateIndex().
		Model((*model.Snapshot)(nil)).
		Index("character_snapshots_expires_at_idx").
		Column("expires_at").
		IfNotExists().
		Exec(ctx)
	return errors.Wrap(err, "failed to create character_snapshots expiry index")
}

func (r *PostgresSnapshot) GetSnapshotByID(ctx context.Context, id string) (*model.Snapshot, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *PostgresSnapshot) SnapshotExists(ctx context.Context, id string) (bool, error) {
	return r.sel.Exists(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *PostgresSnapshot) CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	_, err := r.db.NewInsert().
		Model(snapshot).
		Exec(ctx)
	return err
}

func (r *PostgresSnapshot) UpdateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	res, err := r.db.NewUpdate().
		Model(snapshot).
		Column("characters", "updated_at", "expires_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return apierr.ErrNotFound
	}
	return nil
}

func (r *PostgresSnapshot) DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.NewDelete().
		Model((*model.Snapshot)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PostgresSnapshot) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
