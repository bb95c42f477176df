package snapshot

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controller.snapshot", fx.Invoke(
		RegisterHTTP,
		RegisterCallable,
	))
}
