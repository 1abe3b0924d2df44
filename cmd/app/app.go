package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/riftcoach/backend/cmd/app/cli/analyze"
	"github.com/riftcoach/backend/cmd/app/cli/segment"
	"github.com/riftcoach/backend/cmd/app/cli/tokens"
	"github.com/riftcoach/backend/cmd/app/server"
	"github.com/riftcoach/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "riftcoach",
		Description: "The RiftCoach match analysis backend. Built with Go, fiber and go.uber.org/fx. Distills match timelines into phase-segmented artifacts and spoken coaching reviews.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			analyze.Command(),
			segment.Command(),
			tokens.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
