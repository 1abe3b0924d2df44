package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/fileblob"

	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

func testArtifact(t *testing.T) *Artifact {
	t.Helper()
	bucket, err := fileblob.OpenBucket(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })
	return NewArtifact(bucket)
}

func TestChampionFolder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lillia", ChampionFolder("Lillia"))
	assert.Equal(t, "lee_sin", ChampionFolder("Lee Sin"))
	assert.Equal(t, "kaisa", ChampionFolder("Kai'Sa"))
}

func TestNewBaseName(t *testing.T) {
	t.Parallel()

	base := NewBaseName(time.Date(2025, 11, 12, 20, 30, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^game_20251112_[A-Za-z0-9]{4}$`), base)
}

func TestArtifactKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lillia/game_20251112_x49l_log.json", LogKey("lillia", "game_20251112_x49l"))
	assert.Equal(t, "lillia/game_20251112_x49l_timeline.json", TimelineKey("lillia", "game_20251112_x49l"))
	assert.Equal(t, "lillia/game_20251112_x49l_timeline_early.json", PhaseTimelineKey("lillia", "game_20251112_x49l", "early"))
	assert.Equal(t, "lillia/game_20251112_x49l_analysis.mp3", AudioKey("lillia", "game_20251112_x49l"))
	assert.Equal(t, "lillia/Lillia_global_analysis.mp3", GlobalAudioKey("lillia", "Lillia"))
}

func TestArtifactPutGetJSON(t *testing.T) {
	t.Parallel()

	r := testArtifact(t)
	ctx := context.Background()

	require.NoError(t, r.PutJSON(ctx, "lillia/test.json", map[string]any{"a": 1}))

	var dest map[string]any
	require.NoError(t, r.GetJSON(ctx, "lillia/test.json", &dest))
	assert.Equal(t, map[string]any{"a": float64(1)}, dest)

	exists, err := r.Exists(ctx, "lillia/test.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArtifactListBases(t *testing.T) {
	t.Parallel()

	r := testArtifact(t)
	ctx := context.Background()

	// only the match log marks a base; sibling artifacts must not duplicate it
	for _, key := range []string{
		LogKey("lillia", "game_20251113_cd34"),
		LogKey("lillia", "game_20251112_ab12"),
		TimelineKey("lillia", "game_20251112_ab12"),
		ContextKey("lillia", "game_20251112_ab12"),
		LogKey("ahri", "game_20251112_zz99"),
	} {
		require.NoError(t, r.Put(ctx, key, []byte("{}"), "application/json"))
	}

	bases, err := r.ListBases(ctx, "lillia")
	require.NoError(t, err)
	assert.Equal(t, []string{"game_20251112_ab12", "game_20251113_cd34"}, bases)

	empty, err := r.ListBases(ctx, "yone")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestArtifactGetMissing(t *testing.T) {
	t.Parallel()

	r := testArtifact(t)
	_, err := r.Get(context.Background(), "lillia/missing.json")
	require.Error(t, err)

	var riftErr *rcerr.RiftError
	require.True(t, errors.As(err, &riftErr))
	assert.Equal(t, rcerr.CodeNotFound, riftErr.ErrorCode)
}

func TestArtifactReachable(t *testing.T) {
	t.Parallel()

	r := testArtifact(t)
	assert.NoError(t, r.Reachable(context.Background()))
}
