package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/client"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/cache"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
	"github.com/riftcoach/backend/internal/repo"
)

const puuidCacheExpire = time.Hour * 24

// riotAPI is the slice of the match-data provider the service consumes.
type riotAPI interface {
	GetPUUID(ctx context.Context, gameName, tagLine string) (string, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*model.Match, error)
	GetTimeline(ctx context.Context, matchID string) (*model.Timeline, error)
}

// Match fetches recent games from the match-data provider, filters them to a
// champion, runs the transform pipeline and persists the resulting artifacts.
type Match struct {
	conf     *appconfig.Config
	riot     riotAPI
	timeline *Timeline
	artifact *repo.Artifact

	puuidCache *cache.Set[string]
}

func NewMatch(conf *appconfig.Config, riot *client.Riot, timeline *Timeline, artifact *repo.Artifact) *Match {
	return &Match{
		conf:       conf,
		riot:       riot,
		timeline:   timeline,
		artifact:   artifact,
		puuidCache: cache.NewSet[string]("puuid"),
	}
}

// normalizeChampion folds a champion name for comparison ("Kai'Sa" and
// "kaisa" compare equal).
func normalizeChampion(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "'", "")
	return name
}

// FetchChampionGames resolves the player, scans their recent matches for
// games on the requested champion, runs each one through the transform
// pipeline and persists the log and timeline artifacts. Matches that fail to
// fetch or transform are skipped, not fatal to the batch.
func (s *Match) FetchChampionGames(ctx context.Context, req *model.FetchGamesRequest) (*model.FetchGamesResponse, error) {
	tagLine := req.TagLine
	if tagLine == "" {
		tagLine = s.conf.RiotTagLine
	}
	count := req.Count
	if count <= 0 {
		count = s.conf.MatchFetchCount
	}

	// an explicit puuid skips the account lookup entirely
	puuid := req.PUUID
	if puuid == "" {
		_, err := s.puuidCache.MutexGetSet(req.GameName+"#"+tagLine, &puuid, func() (string, error) {
			return s.riot.GetPUUID(ctx, req.GameName, tagLine)
		}, puuidCacheExpire)
		if err != nil {
			return nil, err
		}
	}

	matchIDs, err := s.riot.GetMatchIDs(ctx, puuid, count)
	if err != nil {
		return nil, err
	}

	folder := repo.ChampionFolder(req.Champion)
	wantChampion := normalizeChampion(req.Champion)

	games := make([]*model.GameInfo, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		info, err := s.fetchOne(ctx, matchID, puuid, wantChampion, folder)
		if err != nil {
			log.Warn().Err(err).Str("match", matchID).Msg("skipping match")
			continue
		}
		if info != nil {
			games = append(games, info)
		}
	}

	if len(games) == 0 {
		player := req.GameName + "#" + tagLine
		if req.GameName == "" {
			player = "puuid " + puuid
		}
		return nil, rcerr.ErrNotFound.Msg("no recent games on %s for %s", req.Champion, player)
	}

	return &model.FetchGamesResponse{
		Games:    games,
		Champion: req.Champion,
		PUUID:    puuid,
	}, nil
}

// fetchOne processes a single match. Returns (nil, nil) when the player did
// not play the requested champion in it.
func (s *Match) fetchOne(ctx context.Context, matchID, puuid, wantChampion, folder string) (*model.GameInfo, error) {
	m, err := s.riot.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	player, ok := m.ParticipantByPUUID(puuid)
	if !ok {
		return nil, rcerr.ErrUpstream.Msg("player %s absent from match %s", puuid, matchID)
	}
	if normalizeChampion(player.ChampionName) != wantChampion {
		return nil, nil
	}

	t, err := s.riot.GetTimeline(ctx, matchID)
	if err != nil {
		return nil, err
	}

	processed, err := s.timeline.Process(t, m)
	if err != nil {
		return nil, err
	}

	base := repo.NewBaseName(time.UnixMilli(m.Info.GameCreation))
	if err := s.artifact.PutJSON(ctx, repo.LogKey(folder, base), s.timeline.SparsifyMatch(m)); err != nil {
		return nil, err
	}
	if err := s.artifact.PutJSON(ctx, repo.TimelineKey(folder, base), processed); err != nil {
		return nil, err
	}

	return &model.GameInfo{
		ID:       base,
		MatchID:  matchID,
		Champion: player.ChampionName,
		Result:   lo.Ternary(player.Win, "Victory", "Defeat"),
		KDA:      fmt.Sprintf("%d/%d/%d", player.Kills, player.Deaths, player.Assists),
		Duration: fmt.Sprintf("%d:%02d", m.Info.GameDuration/60, m.Info.GameDuration%60),
		Date:     time.UnixMilli(m.Info.GameCreation).Format("2006-01-02"),
	}, nil
}
