package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/model"
	modelcache "exusiai.dev/roster-backend/internal/model/cache"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/pkg/cache"
	"exusiai.dev/roster-backend/internal/pkg/observability"
	"exusiai.dev/roster-backend/internal/pkg/shortid"
	"exusiai.dev/roster-backend/internal/repo"
	"exusiai.dev/roster-backend/internal/util/normalize"
)

type SaveOutcome string

const (
	SaveOutcomeCreated SaveOutcome = "created"
	SaveOutcomeUpdated SaveOutcome = "updated"
	// SaveOutcomeReissued is a create where the caller supplied an identifier that did not exist.
	SaveOutcomeReissued SaveOutcome = "reissued"
)

type SaveResult struct {
	ID      string
	Outcome SaveOutcome
}

type Snapshot struct {
	Store      repo.SnapshotStore
	Cache      *modelcache.SnapshotByID
	normalizer *normalize.Normalizer
	issuer     *shortid.Issuer
	ttl        time.Duration
	cacheTTL   time.Duration
	idLength   int
	now        func() time.Time
}

func NewSnapshot(conf *appconfig.Config, store repo.SnapshotStore, snapshotCache *modelcache.SnapshotByID) *Snapshot {
	var opts []normalize.Option
	if conf.NormalizeLegacyZero {
		opts = append(opts, normalize.WithLegacyZero())
	}

	return &Snapshot{
		Store:      store,
		Cache:      snapshotCache,
		normalizer: normalize.New(opts...),
		issuer:     shortid.NewIssuer(store.SnapshotExists),
		ttl:        conf.SnapshotTTL,
		cacheTTL:   conf.SnapshotCacheTTL,
		idLength:   conf.IDLength,
		now:        time.Now,
	}
}

// Save normalizes data and stores it. When id names an existing snapshot it is updated in
// place; otherwise a fresh identifier is issued, even if id was supplied.
func (s *Snapshot) Save(ctx context.Context, id string, data any) (*SaveResult, error) {
	if !normalize.Plausible(data) {
		observability.ImplausiblePayloads.Inc()
		log.Debug().
			Str("evt.name", "snapshot.save.implausible").
			Msg("payload does not look like a roster export, normalizing anyway")
	}

	characters := s.normalizer.Normalize(data)
	if len(characters) == 0 {
		return nil, apierr.ErrNoValidRecords
	}
	observability.SnapshotRecords.Observe(float64(len(characters)))

	now := s.now()

	if id != "" {
		updated, err := s.update(ctx, id, characters, now)
		if err != nil {
			return nil, err
		}
		if updated {
			observability.SnapshotSaves.WithLabelValues(string(SaveOutcomeUpdated)).Inc()
			return &SaveResult{ID: id, Outcome: SaveOutcomeUpdated}, nil
		}
	}

	newID, err := s.issuer.Issue(ctx, s.idLength)
	if err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		ID:         newID,
		Characters: characters,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.Store.CreateSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	outcome := SaveOutcomeCreated
	if id != "" {
		outcome = SaveOutcomeReissued
		log.Info().
			Str("evt.name", "snapshot.save.id_discarded").
			Str("requestedId", id).
			Str("issuedId", newID).
			Msg("requested snapshot id does not exist, issued a new one")
	}
	observability.SnapshotSaves.WithLabelValues(string(outcome)).Inc()

	return &SaveResult{ID: newID, Outcome: outcome}, nil
}

// update replaces the characters of the snapshot stored under id. It reports false when no
// such snapshot exists, including when it vanished between the existence check and the write.
func (s *Snapshot) update(ctx context.Context, id string, characters []model.CharacterRecord, now time.Time) (bool, error) {
	exists, err := s.Store.SnapshotExists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	err = s.Store.UpdateSnapshot(ctx, &model.Snapshot{
		ID:         id,
		Characters: characters,
		UpdatedAt:  &now,
		ExpiresAt:  now.Add(s.ttl),
	})
	if errors.Is(err, apierr.ErrNotFound) {
		log.Warn().
			Str("evt.name", "snapshot.save.vanished").
			Str("id", id).
			Msg("snapshot disappeared before it could be updated")
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := s.Cache.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("failed to invalidate cached snapshot")
	}
	return true, nil
}

// Cache: snapshot#id:{id}, SnapshotCacheTTL, never past expiresAt
func (s *Snapshot) Get(ctx context.Context, id string) (*model.Snapshot, error) {
	if id == "" {
		return nil, apierr.ErrIDRequired
	}

	cached, err := s.Cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("id", id).Msg("snapshot cache unavailable, reading from storage")
	}

	dbSnapshot, err := s.Store.GetSnapshotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := dbSnapshot.InUTC()
	snapshot.ID = id

	if expire := s.cacheExpiry(snapshot); expire > 0 {
		if err := s.Cache.Set(ctx, snapshot, expire); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("failed to cache snapshot")
		}
	}
	return snapshot, nil
}

func (s *Snapshot) cacheExpiry(snapshot *model.Snapshot) time.Duration {
	untilExpiry := snapshot.ExpiresAt.Sub(s.now())
	if untilExpiry < s.cacheTTL {
		return untilExpiry
	}
	return s.cacheTTL
}
