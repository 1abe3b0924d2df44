package segment

import (
	"fmt"

	"github.com/urfave/cli/v2"

	cliapp "github.com/riftcoach/backend/cmd/app/cli"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/repo"
	"github.com/riftcoach/backend/internal/service"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "segment",
		Usage: "split a stored timeline artifact into per-phase artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "champion", Usage: "champion the game was fetched for", Required: true},
			&cli.StringFlag{Name: "game", Usage: "artifact base name (game_<date>_<id>)", Required: true},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	var timeline *service.Timeline
	var artifact *repo.Artifact
	if err := cliapp.Populate(&timeline, &artifact); err != nil {
		return err
	}

	folder := repo.ChampionFolder(c.String("champion"))
	base := c.String("game")

	data, err := artifact.Get(c.Context, repo.TimelineKey(folder, base))
	if err != nil {
		return err
	}
	t, err := model.ParseTimeline(data)
	if err != nil {
		return err
	}

	phases, err := timeline.SegmentPhases(t)
	if err != nil {
		return err
	}

	for name, tree := range phases {
		key := repo.PhaseTimelineKey(folder, base, name)
		if err := artifact.PutJSON(c.Context, key, tree); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", key)
	}
	return nil
}
