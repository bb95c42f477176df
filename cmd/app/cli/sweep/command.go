package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/roster-backend/cmd/app/cli"
	"exusiai.dev/roster-backend/internal/repo"
	"exusiai.dev/roster-backend/internal/service"
)

type CommandDeps struct {
	fx.In

	Store repo.SnapshotStore
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "delete expired snapshots once and exit",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:   "now",
				Usage:  "treat this instant as the current time, e.g. 2024-01-01T00:00:00Z",
				Layout: time.RFC3339,
			},
		},
		Action: func(c *cli.Context) error {
			var deps CommandDeps
			fxApp, err := cliapp.Start(fx.Populate(&deps))
			if err != nil {
				return err
			}
			defer func() {
				if err := fxApp.Stop(context.Background()); err != nil {
					log.Warn().Err(err).Msg("failed to stop application")
				}
			}()

			now := time.Now()
			if ts := c.Timestamp("now"); ts != nil {
				now = *ts
			}

			deleted, err := service.Sweep(c.Context, deps.Store, now)
			if err != nil {
				return err
			}

			log.Info().Int("deleted", deleted).Msg("sweep finished")
			return nil
		},
	}
}
