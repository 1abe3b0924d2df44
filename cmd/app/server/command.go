package server

import (
	"github.com/urfave/cli/v2"

	"github.com/riftcoach/backend/internal/app"
	"github.com/riftcoach/backend/internal/app/appcontext"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "start the HTTP server",
		Action: func(c *cli.Context) error {
			app.New(appcontext.Declare(appcontext.EnvServer)).Run()
			return nil
		},
	}
}
