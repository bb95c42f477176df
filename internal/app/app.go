package app

import (
	"time"

	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/app/appcontext"
	"exusiai.dev/roster-backend/internal/controller"
	"exusiai.dev/roster-backend/internal/infra"
	"exusiai.dev/roster-backend/internal/pkg/logger"
	"exusiai.dev/roster-backend/internal/repo"
	"exusiai.dev/roster-backend/internal/server"
	"exusiai.dev/roster-backend/internal/service"
	"exusiai.dev/roster-backend/internal/workers/sweepwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),
	}
	baseOpts = append(baseOpts, ProvideOptions(conf)...)

	return append(baseOpts, additionalOpts...)
}

// ProvideOptions wires every layer of the application around an already parsed conf.
func ProvideOptions(conf *appconfig.Config) []fx.Option {
	return []fx.Option{
		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(conf.StorageDriver),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(sweepwkr.Start),

		// fx Extra Options
		fx.StartTimeout(10 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
