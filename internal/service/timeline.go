package service

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/observability"
	"github.com/riftcoach/backend/internal/util/timelineutil"
)

// Timeline runs the transform pipeline over raw timeline records.
type Timeline struct{}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func observeStage(stage string) func() {
	timer := prometheus.NewTimer(observability.PipelineStageDuration.WithLabelValues(stage))
	return func() { timer.ObserveDuration() }
}

// Process runs the full pipeline over one raw timeline: identity mapping,
// delta encoding, derived-field enrichment, then sparsification. Returns the
// sparsified artifact tree ready for persistence. The input timeline is
// consumed (mutated) in the process. The stage order is load-bearing: delta
// encoding keys off mapped identities, enrichment fields must not be delta
// encoded themselves, and sparsification must run last.
func (s *Timeline) Process(t *model.Timeline, m *model.Match) (map[string]any, error) {
	stop := observeStage("identity")
	_, err := timelineutil.MapIdentities(t, m)
	stop()
	if err != nil {
		return nil, err
	}

	stop = observeStage("delta")
	timelineutil.DeltaEncode(t)
	stop()

	stop = observeStage("enrich")
	timelineutil.Enrich(t)
	stop()

	tree, err := t.Tree()
	if err != nil {
		return nil, err
	}

	stop = observeStage("sparsify")
	sparse := timelineutil.Sparsify(tree)
	stop()

	return sparse.(map[string]any), nil
}

// SparsifyMatch returns the sparsified artifact tree of a match summary.
func (s *Timeline) SparsifyMatch(m *model.Match) map[string]any {
	return timelineutil.Sparsify(m.Tree()).(map[string]any)
}

// SegmentPhases splits a timeline into the default game phases and sparsifies
// each slice independently, returning artifact trees keyed by phase name.
func (s *Timeline) SegmentPhases(t *model.Timeline) (map[string]map[string]any, error) {
	stop := observeStage("segment")
	phases := timelineutil.Segment(t, timelineutil.DefaultWindows())
	stop()

	trees := make(map[string]map[string]any, len(phases))
	for name, phase := range phases {
		tree, err := toTree(phase)
		if err != nil {
			return nil, err
		}
		sparse := timelineutil.Sparsify(tree).(map[string]any)
		// phase_info describes the slice boundaries; a zero start is not an
		// empty value there.
		if info, ok := tree["phase_info"]; ok {
			sparse["phase_info"] = info
		}
		trees[name] = sparse
	}
	return trees, nil
}

// toTree round-trips a value through JSON into a generic tree.
func toTree(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal value")
	}
	var tree map[string]any
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, errors.Wrap(err, "failed to rebuild tree")
	}
	return tree, nil
}
