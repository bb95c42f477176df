package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Snapshot is a persisted roster: the normalized character records saved under a short identifier.
// ID is the storage key and is not part of the document body returned to clients.
type Snapshot struct {
	bun.BaseModel `bun:"table:character_snapshots,alias:cs" json:"-" bson:"-" msgpack:"-"`

	ID         string            `bun:"id,pk" json:"-" bson:"_id"`
	Characters []CharacterRecord `bun:"characters,type:jsonb,notnull" json:"characters" bson:"characters"`
	CreatedAt  time.Time         `bun:"created_at,notnull" json:"createdAt" bson:"createdAt"`
	UpdatedAt  *time.Time        `bun:"updated_at,nullzero" json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	ExpiresAt  time.Time         `bun:"expires_at,notnull" json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the snapshot is eligible for deletion at now.
func (s *Snapshot) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// LastModified is the time of the last save.
func (s *Snapshot) LastModified() time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	return s.CreatedAt
}

// InUTC returns a copy of s with every timestamp in UTC.
func (s *Snapshot) InUTC() *Snapshot {
	c := *s
	c.CreatedAt = s.CreatedAt.UTC()
	c.ExpiresAt = s.ExpiresAt.UTC()
	if s.UpdatedAt != nil {
		updatedAt := s.UpdatedAt.UTC()
		c.UpdatedAt = &updatedAt
	}
	return &c
}
