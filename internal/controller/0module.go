package controller

import (
	"go.uber.org/fx"

	controllermeta "exusiai.dev/roster-backend/internal/controller/meta"
	controllersnapshot "exusiai.dev/roster-backend/internal/controller/snapshot"
)

func Module() fx.Option {
	return fx.Module("controller",
		controllersnapshot.Module(),
		controllermeta.Module(),
	)
}
