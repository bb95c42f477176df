package cli

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/app"
	"exusiai.dev/roster-backend/internal/app/appcontext"
)

// Start builds the application in CLI mode and starts it, so that module can
// populate its dependencies. The returned app shall be stopped by the caller.
func Start(module fx.Option) (*fx.App, error) {
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := fxApp.Start(context.Background()); err != nil {
		return nil, err
	}
	return fxApp, nil
}
