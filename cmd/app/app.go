package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/roster-backend/cmd/app/cli/sweep"
	"exusiai.dev/roster-backend/cmd/app/server"
	"exusiai.dev/roster-backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "rosterbackend",
		Description: "Stores and serves normalized operator roster snapshots under short shareable ids. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			sweep.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
