package infra

import "go.uber.org/fx"

// Module provides every infrastructure client. fx only constructs the ones a
// dependent asks for, so selecting a storage driver never dials the other database.
func Module() fx.Option {
	return fx.Module("infra", fx.Provide(
		Redis,
		RedSync,
		Postgres,
		Mongo,
	))
}
