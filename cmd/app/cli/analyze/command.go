package analyze

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	cliapp "github.com/riftcoach/backend/cmd/app/cli"
	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/client"
	"github.com/riftcoach/backend/internal/constant"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
	"github.com/riftcoach/backend/internal/repo"
	"github.com/riftcoach/backend/internal/service"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "fetch recent games on a champion and generate coaching reviews for them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "champion", Usage: "champion to look for", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Riot ID game name of the player"},
			&cli.StringFlag{Name: "tag", Usage: "Riot ID tag line (defaults to the configured region tag)"},
			&cli.StringFlag{Name: "puuid", Usage: "player puuid; overrides the Riot ID lookup"},
			&cli.IntFlag{Name: "count", Usage: "how many recent matches to scan"},
			&cli.IntFlag{Name: "games", Usage: "cap on how many games to analyze", Value: 1},
			&cli.StringFlag{Name: "voice", Usage: "voice of the rendered review", Value: constant.DefaultVoice},
			&cli.BoolFlag{Name: "no-fetch", Usage: "analyze already stored artifacts instead of fetching new games"},
			&cli.StringFlag{Name: "output", Usage: "local file to write the first game's review audio to"},
			&cli.BoolFlag{Name: "save-text", Usage: "also write each review text to a local file"},
		},
		Action: run,
	}
}

// options are the resolved command flags.
type options struct {
	Champion string
	GameName string
	TagLine  string
	PUUID    string
	Voice    string
	Output   string
	Count    int
	Limit    int
	NoFetch  bool
	SaveText bool
}

type accountResolver interface {
	GetPUUID(ctx context.Context, gameName, tagLine string) (string, error)
}

type gameFetcher interface {
	FetchChampionGames(ctx context.Context, req *model.FetchGamesRequest) (*model.FetchGamesResponse, error)
}

func capLimit(ids []string, limit int) []string {
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}

// resolveGames decides which persisted games to analyze and as which player.
// With no-fetch it reuses artifacts already in the bucket; otherwise it
// fetches fresh ones through the match service. An explicit puuid always wins
// over the Riot ID lookup.
func resolveGames(ctx context.Context, riot accountResolver, match gameFetcher, artifact *repo.Artifact, opts options) ([]string, string, error) {
	if opts.NoFetch {
		puuid := opts.PUUID
		if puuid == "" {
			if opts.GameName == "" {
				return nil, "", rcerr.ErrInvalidReq.Msg("no-fetch needs --puuid or --name to identify the player")
			}
			var err error
			puuid, err = riot.GetPUUID(ctx, opts.GameName, opts.TagLine)
			if err != nil {
				return nil, "", err
			}
		}

		bases, err := artifact.ListBases(ctx, repo.ChampionFolder(opts.Champion))
		if err != nil {
			return nil, "", err
		}
		if len(bases) == 0 {
			return nil, "", rcerr.ErrNotFound.Msg("no stored games for %s; run without --no-fetch first", opts.Champion)
		}
		return capLimit(bases, opts.Limit), puuid, nil
	}

	fetched, err := match.FetchChampionGames(ctx, &model.FetchGamesRequest{
		GameName: opts.GameName,
		TagLine:  opts.TagLine,
		Champion: opts.Champion,
		PUUID:    opts.PUUID,
		Count:    opts.Count,
	})
	if err != nil {
		return nil, "", err
	}

	for _, g := range fetched.Games {
		fmt.Printf("%s  %s  %s  %s  (%s)\n", g.Date, g.MatchID, g.Result, g.KDA, g.ID)
	}

	ids := lo.Map(fetched.Games, func(g *model.GameInfo, _ int) string {
		return g.ID
	})
	return capLimit(ids, opts.Limit), fetched.PUUID, nil
}

// exportArtifacts copies the requested review outputs from the bucket into
// local files: the first game's audio to opts.Output, and each review text
// next to the working directory with save-text.
func exportArtifacts(ctx context.Context, artifact *repo.Artifact, folder string, resp *model.AnalyzeGamesResponse, opts options) error {
	if opts.SaveText {
		for _, ga := range resp.GameAnalyses {
			name := ga.GameID + "_analysis.txt"
			if err := os.WriteFile(name, []byte(ga.DetailedAnalysis), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		}
		if resp.GlobalDetailedAnalysis.Valid {
			name := repo.ChampionFolder(opts.Champion) + "_global_analysis.txt"
			if err := os.WriteFile(name, []byte(resp.GlobalDetailedAnalysis.String), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		}
	}

	if opts.Output != "" {
		first := resp.GameAnalyses[0]
		if !first.AudioURL.Valid {
			fmt.Println("no audio was rendered; skipping --output")
			return nil
		}
		audio, err := artifact.Get(ctx, repo.AudioKey(folder, first.GameID))
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.Output, audio, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.Output)
	}
	return nil
}

func run(c *cli.Context) error {
	var conf *appconfig.Config
	var riot *client.Riot
	var match *service.Match
	var analysis *service.Analysis
	var artifact *repo.Artifact
	if err := cliapp.Populate(&conf, &riot, &match, &analysis, &artifact); err != nil {
		return err
	}

	opts := options{
		Champion: c.String("champion"),
		GameName: c.String("name"),
		TagLine:  c.String("tag"),
		PUUID:    c.String("puuid"),
		Voice:    c.String("voice"),
		Output:   c.String("output"),
		Count:    c.Int("count"),
		Limit:    c.Int("games"),
		NoFetch:  c.Bool("no-fetch"),
		SaveText: c.Bool("save-text"),
	}
	if opts.TagLine == "" {
		opts.TagLine = conf.RiotTagLine
	}

	gameIDs, puuid, err := resolveGames(c.Context, riot, match, artifact, opts)
	if err != nil {
		return err
	}

	resp, err := analysis.AnalyzeGames(c.Context, &model.AnalyzeGamesRequest{
		GameIDs:  gameIDs,
		Champion: opts.Champion,
		PUUID:    puuid,
		Voice:    opts.Voice,
	})
	if err != nil {
		return err
	}

	for _, ga := range resp.GameAnalyses {
		fmt.Printf("\n== %s (%s) ==\n%s\n", ga.GameID, ga.MatchID, ga.DetailedAnalysis)
		if ga.AudioURL.Valid {
			fmt.Printf("audio: %s\n", ga.AudioURL.String)
		}
	}
	if resp.GlobalDetailedAnalysis.Valid {
		fmt.Printf("\n== across games ==\n%s\n", resp.GlobalDetailedAnalysis.String)
	}

	return exportArtifacts(c.Context, artifact, repo.ChampionFolder(opts.Champion), resp, opts)
}
