package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/fileblob"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/cache"
	"github.com/riftcoach/backend/internal/repo"
)

// stubRiot serves the fixtures of timeline_test.go and counts account lookups.
type stubRiot struct {
	t          *testing.T
	puuidCalls int
}

func (s *stubRiot) GetPUUID(_ context.Context, _, _ string) (string, error) {
	s.puuidCalls++
	return "puuid-1", nil
}

func (s *stubRiot) GetMatchIDs(_ context.Context, _ string, _ int) ([]string, error) {
	return []string{"EUW1_4242"}, nil
}

func (s *stubRiot) GetMatch(_ context.Context, _ string) (*model.Match, error) {
	return fixtureMatch(s.t), nil
}

func (s *stubRiot) GetTimeline(_ context.Context, _ string) (*model.Timeline, error) {
	return fixtureTimeline(s.t), nil
}

func testMatch(t *testing.T) (*Match, *stubRiot, *repo.Artifact) {
	t.Helper()

	bucket, err := fileblob.OpenBucket(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })
	artifact := repo.NewArtifact(bucket)

	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		RiotTagLine:     "EUW",
		MatchFetchCount: 20,
	}}

	riot := &stubRiot{t: t}
	return &Match{
		conf:       conf,
		riot:       riot,
		timeline:   NewTimeline(),
		artifact:   artifact,
		puuidCache: cache.NewSet[string](t.Name()),
	}, riot, artifact
}

func TestNormalizeChampion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kaisa", normalizeChampion("Kai'Sa"))
	assert.Equal(t, "leesin", normalizeChampion("Lee Sin"))
	assert.Equal(t, normalizeChampion("LILLIA"), normalizeChampion("lillia"))
}

func TestFetchChampionGames(t *testing.T) {
	t.Parallel()

	s, riot, artifact := testMatch(t)
	resp, err := s.FetchChampionGames(context.Background(), &model.FetchGamesRequest{
		GameName: "Player",
		Champion: "Lillia",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, riot.puuidCalls)
	assert.Equal(t, "puuid-1", resp.PUUID)
	require.Len(t, resp.Games, 1)

	game := resp.Games[0]
	assert.Equal(t, "EUW1_4242", game.MatchID)
	assert.Equal(t, "Lillia", game.Champion)

	exists, err := artifact.Exists(context.Background(), repo.LogKey("lillia", game.ID))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFetchChampionGamesPUUIDBypass(t *testing.T) {
	t.Parallel()

	s, riot, artifact := testMatch(t)
	resp, err := s.FetchChampionGames(context.Background(), &model.FetchGamesRequest{
		PUUID:    "puuid-1",
		Champion: "Lillia",
	})
	require.NoError(t, err)

	assert.Zero(t, riot.puuidCalls, "an explicit puuid must skip the account lookup")
	assert.Equal(t, "puuid-1", resp.PUUID)
	require.Len(t, resp.Games, 1)

	exists, err := artifact.Exists(context.Background(), repo.TimelineKey("lillia", resp.Games[0].ID))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFetchChampionGamesWrongChampion(t *testing.T) {
	t.Parallel()

	s, _, _ := testMatch(t)
	_, err := s.FetchChampionGames(context.Background(), &model.FetchGamesRequest{
		PUUID:    "puuid-1",
		Champion: "Yone",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puuid puuid-1")
}
