package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/util/timelineutil"
)

func segmentForTest(tl *model.Timeline) map[string]*model.PhaseTimeline {
	return timelineutil.Segment(tl, timelineutil.DefaultWindows())
}

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}

func TestRoundedJSON(t *testing.T) {
	t.Parallel()

	out, err := roundedJSON(map[string]any{
		"ratio": 412.0718562874,
		"whole": float64(3),
	}, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "412.072")
	assert.NotContains(t, out, "412.0718")
}

func TestMatchLogPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := matchLogPrompt(fixtureMatch(t), "puuid-1", 3)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Summoner: Hex#EUW")
	assert.Contains(t, prompt, "Champion: Lillia")
	assert.Contains(t, prompt, "Side: Blue Side (Team 100)")
	assert.Contains(t, prompt, `"matchId": "EUW1_4242"`)
}

func TestMatchLogPromptUnknownPlayer(t *testing.T) {
	t.Parallel()

	_, err := matchLogPrompt(fixtureMatch(t), "puuid-9", 3)
	assert.Error(t, err)
}

func TestPhasePrompt(t *testing.T) {
	t.Parallel()

	tl := fixtureTimeline(t)
	_, err := NewTimeline().Process(tl, fixtureMatch(t))
	require.NoError(t, err)

	phases := segmentForTest(tl)
	prompt, err := phasePrompt("early", phases["early"], "ctx summary", "puuid-1", "Lillia", 3)
	require.NoError(t, err)

	assert.Contains(t, prompt, "EARLY GAME phase (0-15 minutes)")
	assert.Contains(t, prompt, "MATCH CONTEXT (from statistical analysis):\nctx summary")
	assert.Contains(t, prompt, "EARLY GAME TIMELINE DATA:")
	assert.Contains(t, prompt, "Begin your early game analysis:")
	assert.Contains(t, prompt, `"phase_name": "early"`)
}

func TestSynthesisPromptFallbacks(t *testing.T) {
	t.Parallel()

	prompt := synthesisPrompt("ctx", map[string]string{"early": "laning notes"}, "Lillia")

	assert.Contains(t, prompt, "laning notes")
	assert.Contains(t, prompt, "No mid game data")
	assert.Contains(t, prompt, "No late game data")
	assert.Contains(t, prompt, "TARGET CHAMPION: Lillia")
}

func TestGlobalPromptOrdersGames(t *testing.T) {
	t.Parallel()

	prompt := globalPrompt(
		map[string]string{"EUW1_2": "second review", "EUW1_1": "first review"},
		map[string]string{"EUW1_1": "first context"},
	)

	assert.Contains(t, prompt, "You have 2 game(s) to analyze")
	assert.Contains(t, prompt, "GAME 1 (EUW1_1):\nfirst context")
	assert.Contains(t, prompt, "GAME 2 (EUW1_2):\nsecond review")
	assert.Less(t, indexOf(prompt, "EUW1_1"), indexOf(prompt, "EUW1_2"))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "First sentence.", summarize("First sentence. Second sentence.", 200))
	assert.Equal(t, "Nice kill!", summarize("Nice kill!\nMore detail follows.", 200))
	assert.Equal(t, "No delimiters here", summarize("No delimiters here", 200))

	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	assert.Equal(t, long[:17]+"...", summarize(long, 20))

	// truncation must land on a rune boundary, not a byte offset
	accented := strings.Repeat("é", 30)
	truncated := summarize(accented, 20)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, strings.Repeat("é", 17)+"...", truncated)
}
