package server

import (
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/pkg/fiberstore"
	"exusiai.dev/roster-backend/internal/server/httpserver"
	"exusiai.dev/roster-backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(fiberstore.NewLimiterStorage),
		fx.Provide(svr.CreateEndpointGroups))
}
