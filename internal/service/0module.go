package service

import (
	"go.uber.org/fx"

	modelcache "exusiai.dev/roster-backend/internal/model/cache"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		modelcache.NewSnapshotByID,
		NewHealth,
		NewSnapshot,
	))
}
