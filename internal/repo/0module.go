package repo

import (
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/app/appconfig"
)

// Module provides the SnapshotStore backed by the configured storage driver.
func Module(driver string) fx.Option {
	var ctor any
	switch driver {
	case appconfig.StorageDriverMongo:
		ctor = NewMongoSnapshot
	case appconfig.StorageDriverMemory:
		ctor = NewMemorySnapshot
	default:
		ctor = NewPostgresSnapshot
	}

	return fx.Module("repo", fx.Provide(
		fx.Annotate(ctor, fx.As(new(SnapshotStore))),
	))
}
