package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/fileblob"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/client"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/repo"
)

// scriptedGenerator answers each analysis stage with a canned response and
// records every prompt it saw.
type scriptedGenerator struct {
	mu      sync.Mutex
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	switch {
	case strings.Contains(prompt, "MATCH LOG DATA:"):
		return "Context: aggressive early jungle pathing. Deaths clustered mid game.", nil
	case strings.Contains(prompt, "Begin your early game analysis:"):
		return "Early: clean first clear and a kill at 0:30.", nil
	case strings.Contains(prompt, "Begin your mid game analysis:"):
		return "Mid: solid objective control.", nil
	case strings.Contains(prompt, "Begin your late game analysis:"):
		return "Late: closed the game well.", nil
	case strings.Contains(prompt, "Now synthesize this into"):
		return "Welcome to the review. You set the tempo from the first clear onward.", nil
	case strings.Contains(prompt, "game(s) to analyze"):
		return "Across games your pathing is consistent. Work on mid game deaths.", nil
	}
	return "", errors.New("unexpected prompt")
}

func (g *scriptedGenerator) stageCount(marker string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, p := range g.prompts {
		if strings.Contains(p, marker) {
			n++
		}
	}
	return n
}

func testAnalysis(t *testing.T) (*Analysis, *repo.Artifact, *scriptedGenerator) {
	t.Helper()

	bucket, err := fileblob.OpenBucket(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })
	artifact := repo.NewArtifact(bucket)

	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		AnalysisConcurrency: 2,
		RoundDecimals:       3,
	}}

	generator := &scriptedGenerator{}
	speech := NewSpeech(client.NewElevenLabs(conf), artifact)
	return NewAnalysis(conf, artifact, generator, speech), artifact, generator
}

// seedGame persists the log and processed timeline fixture under one base
// name, the state FetchChampionGames leaves behind.
func seedGame(t *testing.T, artifact *repo.Artifact, folder, base string) {
	t.Helper()
	ctx := context.Background()

	tl := fixtureTimeline(t)
	processed, err := NewTimeline().Process(tl, fixtureMatch(t))
	require.NoError(t, err)

	require.NoError(t, artifact.PutJSON(ctx, repo.LogKey(folder, base), NewTimeline().SparsifyMatch(fixtureMatch(t))))
	require.NoError(t, artifact.PutJSON(ctx, repo.TimelineKey(folder, base), processed))
}

func TestAnalyzeMatch(t *testing.T) {
	t.Parallel()

	s, artifact, generator := testAnalysis(t)
	ctx := context.Background()
	seedGame(t, artifact, "lillia", "game_20251112_ab12")

	review, err := s.AnalyzeMatch(ctx, "lillia", "game_20251112_ab12", "puuid-1", "Lillia")
	require.NoError(t, err)

	assert.Equal(t, "EUW1_4242", review.MatchID)
	assert.Contains(t, review.Context, "aggressive early jungle pathing")
	assert.Contains(t, review.Final, "Welcome to the review")

	// the fixture only has frames inside the early window
	require.Len(t, review.Phases, 1)
	assert.Contains(t, review.Phases["early"], "clean first clear")
	assert.Equal(t, 1, generator.stageCount("Begin your early game analysis:"))
	assert.Equal(t, 0, generator.stageCount("Begin your mid game analysis:"))

	for _, key := range []string{
		repo.ContextKey("lillia", "game_20251112_ab12"),
		repo.PhaseAnalysisKey("lillia", "game_20251112_ab12", "early"),
		repo.FinalAnalysisKey("lillia", "game_20251112_ab12"),
	} {
		exists, err := artifact.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists, key)
	}
}

func TestAnalyzeMatchMissingArtifacts(t *testing.T) {
	t.Parallel()

	s, _, _ := testAnalysis(t)
	_, err := s.AnalyzeMatch(context.Background(), "lillia", "game_20251112_none", "puuid-1", "Lillia")
	assert.Error(t, err)
}

func TestAnalyzeGamesSingle(t *testing.T) {
	t.Parallel()

	s, artifact, _ := testAnalysis(t)
	seedGame(t, artifact, "lillia", "game_20251112_ab12")

	resp, err := s.AnalyzeGames(context.Background(), &model.AnalyzeGamesRequest{
		GameIDs:  []string{"game_20251112_ab12"},
		Champion: "Lillia",
		PUUID:    "puuid-1",
	})
	require.NoError(t, err)

	require.Len(t, resp.GameAnalyses, 1)
	ga := resp.GameAnalyses[0]
	assert.Equal(t, "game_20251112_ab12", ga.GameID)
	assert.Equal(t, "EUW1_4242", ga.MatchID)
	assert.Equal(t, "Welcome to the review.", ga.Summary)
	assert.Contains(t, ga.DetailedAnalysis, "set the tempo")
	assert.False(t, ga.AudioURL.Valid, "audio must be skipped without a speech key")
	require.NotNil(t, ga.PhaseAnalyses)
	assert.True(t, ga.PhaseAnalyses.Early.Valid)
	assert.False(t, ga.PhaseAnalyses.Mid.Valid)

	// single game: no cross-game analysis
	assert.False(t, resp.GlobalDetailedAnalysis.Valid)
	assert.False(t, resp.GlobalSummary.Valid)
}

func TestAnalyzeGamesGlobal(t *testing.T) {
	t.Parallel()

	s, artifact, generator := testAnalysis(t)
	seedGame(t, artifact, "lillia", "game_20251112_ab12")
	seedGame(t, artifact, "lillia", "game_20251113_cd34")

	resp, err := s.AnalyzeGames(context.Background(), &model.AnalyzeGamesRequest{
		GameIDs:  []string{"game_20251112_ab12", "game_20251113_cd34"},
		Champion: "Lillia",
		PUUID:    "puuid-1",
	})
	require.NoError(t, err)

	require.Len(t, resp.GameAnalyses, 2)
	assert.Equal(t, "game_20251112_ab12", resp.GameAnalyses[0].GameID)
	assert.Equal(t, "game_20251113_cd34", resp.GameAnalyses[1].GameID)

	assert.True(t, resp.GlobalDetailedAnalysis.Valid)
	assert.Equal(t, "Across games your pathing is consistent.", resp.GlobalSummary.String)
	assert.Equal(t, 1, generator.stageCount("game(s) to analyze"))
}

func TestVoices(t *testing.T) {
	t.Parallel()

	conf := &appconfig.Config{}
	s := NewSpeech(client.NewElevenLabs(conf), nil)

	assert.Equal(t, []string{"george", "adam", "bill", "callum", "charlie"}, s.Voices())
	assert.Equal(t, "pqHfZKP75CvOlQylNhV4", s.VoiceID("bill"))
	assert.Equal(t, s.VoiceID("george"), s.VoiceID("unknown"))
	assert.False(t, s.Enabled())
}
