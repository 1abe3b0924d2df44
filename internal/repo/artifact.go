package repo

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

// Artifact persists match artifacts (logs, timelines, phase slices, analysis
// text and audio) in a blob bucket, keyed by champion folder and artifact
// base name.
type Artifact struct {
	bucket *blob.Bucket
}

func NewArtifact(bucket *blob.Bucket) *Artifact {
	return &Artifact{bucket: bucket}
}

// ChampionFolder normalizes a champion name into its folder segment
// ("Lee Sin" -> "lee_sin", "Kai'Sa" -> "kaisa").
func ChampionFolder(champion string) string {
	folder := strings.ToLower(champion)
	folder = strings.ReplaceAll(folder, " ", "_")
	folder = strings.ReplaceAll(folder, "'", "")
	return folder
}

// NewBaseName builds the artifact base name for one match:
// game_<YYYYMMDD>_<4-char-random-id>, the date taken from the match's
// creation instant.
func NewBaseName(gameCreation time.Time) string {
	return fmt.Sprintf("game_%s_%s", gameCreation.Format("20060102"), uniuri.NewLen(4))
}

func LogKey(folder, base string) string {
	return folder + "/" + base + "_log.json"
}

func TimelineKey(folder, base string) string {
	return folder + "/" + base + "_timeline.json"
}

func PhaseTimelineKey(folder, base, phase string) string {
	return folder + "/" + base + "_timeline_" + phase + ".json"
}

func ContextKey(folder, base string) string {
	return folder + "/" + base + "_context.txt"
}

func PhaseAnalysisKey(folder, base, phase string) string {
	return folder + "/" + base + "_analysis_" + phase + ".txt"
}

func FinalAnalysisKey(folder, base string) string {
	return folder + "/" + base + "_analysis_final.txt"
}

func AudioKey(folder, base string) string {
	return folder + "/" + base + "_analysis.mp3"
}

func GlobalAudioKey(folder, champion string) string {
	return folder + "/" + champion + "_global_analysis.mp3"
}

func (r *Artifact) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := r.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})
	return errors.Wrapf(err, "failed to write artifact %s", key)
}

// PutJSON serializes v with two-space indentation, matching the persisted
// artifact format readers of the bucket expect.
func (r *Artifact) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal artifact %s", key)
	}
	return r.Put(ctx, key, data, "application/json")
}

func (r *Artifact) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, rcerr.ErrNotFound.Msg("artifact %s not found", key)
		}
		return nil, errors.Wrapf(err, "failed to read artifact %s", key)
	}
	return data, nil
}

func (r *Artifact) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "failed to unmarshal artifact %s", key)
	}
	return nil
}

// ListBases lists the artifact base names persisted under a champion folder,
// sorted ascending so the date segment orders oldest first. A base exists
// once its match log does.
func (r *Artifact) ListBases(ctx context.Context, folder string) ([]string, error) {
	iter := r.bucket.List(&blob.ListOptions{Prefix: folder + "/"})

	bases := []string{}
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list artifacts under %s", folder)
		}
		name := strings.TrimPrefix(obj.Key, folder+"/")
		if base, ok := strings.CutSuffix(name, "_log.json"); ok {
			bases = append(bases, base)
		}
	}
	sort.Strings(bases)
	return bases, nil
}

func (r *Artifact) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := r.bucket.Exists(ctx, key)
	return exists, errors.Wrapf(err, "failed to stat artifact %s", key)
}

// Reachable reports whether the bucket answers at all, for liveness checks.
func (r *Artifact) Reachable(ctx context.Context) error {
	if _, err := r.bucket.Exists(ctx, ".health"); err != nil {
		return errors.Wrap(err, "artifact bucket is unreachable")
	}
	return nil
}
