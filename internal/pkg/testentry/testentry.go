package testentry

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/app"
	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/app/appcontext"
)

// Config returns a configuration backed by the in-memory store, without Redis,
// Sentry or the sweep worker.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "localhost:0",
			TrustedProxies:            []string{"127.0.0.1"},
			CORSAllowOrigins:          "*",
			StorageDriver:             appconfig.StorageDriverMemory,
			HTTPServerShutdownTimeout: time.Second,
			SnapshotTTL:               43800 * time.Hour,
			SnapshotCacheTTL:          time.Hour,
			IDLength:                  6,
			SweepTimezone:             appconfig.Location{Location: time.UTC},
			SweepLockExpiry:           time.Minute,
		},
		AppContext: appcontext.Declare(appcontext.EnvCLI),
	}
}

func Populate(t testing.TB, targets ...any) {
	PopulateWith(t, Config(), targets...)
}

func PopulateWith(t testing.TB, conf *appconfig.Config, targets ...any) {
	t.Helper()

	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts := []fx.Option{fx.NopLogger}
	opts = append(opts, app.ProvideOptions(conf)...)
	opts = append(opts, fx.Populate(targets...))
	opts = append(opts, fx.Invoke(func() {
		log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
	}))

	fxApp := fx.New(opts...)

	if err := fxApp.Start(context.Background()); err != nil {
		t.Fatalf("failed to start application: %v", err)
	}
	t.Cleanup(func() {
		_ = fxApp.Stop(context.Background())
	})
}
