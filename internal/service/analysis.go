package service

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/riftcoach/backend/internal/app/appconfig"
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/async"
	"github.com/riftcoach/backend/internal/pkg/observability"
	"github.com/riftcoach/backend/internal/repo"
	"github.com/riftcoach/backend/internal/util/timelineutil"
)

const (
	gameSummaryLimit   = 200
	globalSummaryLimit = 300
)

// sentenceDelimiters mark the end of the leading sentence a summary is cut to.
var sentenceDelimiters = []string{". ", "!\n", "?\n", ".\n"}

// Analysis runs the staged review over persisted match artifacts: one match
// context pass, one pass per game phase, and a final synthesis, each a single
// text generation.
type Analysis struct {
	conf      *appconfig.Config
	artifact  *repo.Artifact
	generator TextGenerator
	speech    *Speech
}

func NewAnalysis(conf *appconfig.Config, artifact *repo.Artifact, generator TextGenerator, speech *Speech) *Analysis {
	return &Analysis{
		conf:      conf,
		artifact:  artifact,
		generator: generator,
		speech:    speech,
	}
}

// MatchReview is the text output of one fully analyzed match.
type MatchReview struct {
	MatchID string
	Context string
	Phases  map[string]string
	Final   string
}

func observeGeneration(stage string) func() {
	timer := prometheus.NewTimer(observability.GenerationDuration.WithLabelValues(stage))
	return func() { timer.ObserveDuration() }
}

// AnalyzeMatch reviews one persisted match: it loads the log and timeline
// artifacts under folder/base, generates the match context, the per-phase
// analyses and the final synthesis, and persists each text artifact as it is
// produced.
func (s *Analysis) AnalyzeMatch(ctx context.Context, folder, base, puuid, champion string) (*MatchReview, error) {
	logBytes, err := s.artifact.Get(ctx, repo.LogKey(folder, base))
	if err != nil {
		return nil, err
	}
	m, err := model.ParseMatch(logBytes)
	if err != nil {
		return nil, err
	}

	timelineBytes, err := s.artifact.Get(ctx, repo.TimelineKey(folder, base))
	if err != nil {
		return nil, err
	}
	t, err := model.ParseTimeline(timelineBytes)
	if err != nil {
		return nil, err
	}

	// Older timeline artifacts may predate the derived fields; refresh them
	// in place so the phase prompts always carry them.
	if timelineutil.NeedsEnrichment(t) {
		timelineutil.Enrich(t)
		if err := s.artifact.PutJSON(ctx, repo.TimelineKey(folder, base), t); err != nil {
			return nil, err
		}
	}

	matchContext, err := s.generateMatchContext(ctx, m, puuid)
	if err != nil {
		return nil, err
	}
	if err := s.artifact.Put(ctx, repo.ContextKey(folder, base), []byte(matchContext), "text/plain; charset=utf-8"); err != nil {
		return nil, err
	}

	phaseAnalyses, err := s.analyzePhases(ctx, t, matchContext, puuid, champion, folder, base)
	if err != nil {
		return nil, err
	}

	stop := observeGeneration("synthesis")
	final, err := s.generator.Generate(ctx, synthesisPrompt(matchContext, phaseAnalyses, champion))
	stop()
	if err != nil {
		return nil, err
	}
	if err := s.artifact.Put(ctx, repo.FinalAnalysisKey(folder, base), []byte(final), "text/plain; charset=utf-8"); err != nil {
		return nil, err
	}

	return &MatchReview{
		MatchID: m.MatchID(),
		Context: matchContext,
		Phases:  phaseAnalyses,
		Final:   final,
	}, nil
}

func (s *Analysis) generateMatchContext(ctx context.Context, m *model.Match, puuid string) (string, error) {
	prompt, err := matchLogPrompt(m, puuid, s.conf.RoundDecimals)
	if err != nil {
		return "", err
	}

	stop := observeGeneration("context")
	defer stop()
	return s.generator.Generate(ctx, prompt)
}

// analyzePhases reviews the non-empty game phases in parallel, bounded by the
// configured concurrency.
func (s *Analysis) analyzePhases(ctx context.Context, t *model.Timeline, matchContext, puuid, champion, folder, base string) (map[string]string, error) {
	phases := timelineutil.Segment(t, timelineutil.DefaultWindows())

	type task struct {
		name  string
		phase *model.PhaseTimeline
	}
	type result struct {
		name     string
		analysis string
	}

	tasks := make([]task, 0, len(phases))
	for _, w := range timelineutil.DefaultWindows() {
		phase, ok := phases[w.Name]
		if !ok || phase.PhaseInfo.NumFrames == 0 {
			continue
		}
		tasks = append(tasks, task{name: w.Name, phase: phase})
	}

	results, err := async.Map(tasks, s.conf.AnalysisConcurrency, func(tk task) (result, error) {
		prompt, err := phasePrompt(tk.name, tk.phase, matchContext, puuid, champion, s.conf.RoundDecimals)
		if err != nil {
			return result{}, err
		}

		stop := observeGeneration("phase")
		analysis, err := s.generator.Generate(ctx, prompt)
		stop()
		if err != nil {
			return result{}, err
		}

		if err := s.artifact.Put(ctx, repo.PhaseAnalysisKey(folder, base, tk.name), []byte(analysis), "text/plain; charset=utf-8"); err != nil {
			return result{}, err
		}
		return result{name: tk.name, analysis: analysis}, nil
	})
	if err != nil {
		return nil, err
	}

	analyses := make(map[string]string, len(results))
	for _, r := range results {
		analyses[r.name] = r.analysis
	}
	return analyses, nil
}

// AnalyzeGames reviews a batch of previously fetched games and returns the
// per-game reviews plus, when more than one game is analyzed, a cross-game
// pattern analysis.
func (s *Analysis) AnalyzeGames(ctx context.Context, req *model.AnalyzeGamesRequest) (*model.AnalyzeGamesResponse, error) {
	folder := repo.ChampionFolder(req.Champion)
	voiceID := s.speech.VoiceID(req.Voice)

	type indexed struct {
		idx      int
		analysis *model.GameAnalysis
		review   *MatchReview
	}

	tasks := make([]indexed, len(req.GameIDs))
	for i := range req.GameIDs {
		tasks[i] = indexed{idx: i}
	}

	results, err := async.Map(tasks, s.conf.AnalysisConcurrency, func(task indexed) (indexed, error) {
		base := req.GameIDs[task.idx]

		review, err := s.AnalyzeMatch(ctx, folder, base, req.PUUID, req.Champion)
		if err != nil {
			return indexed{}, err
		}

		analysis := &model.GameAnalysis{
			GameID:           base,
			MatchID:          review.MatchID,
			Champion:         req.Champion,
			Summary:          summarize(review.Final, gameSummaryLimit),
			DetailedAnalysis: review.Final,
			PhaseAnalyses: &model.PhaseAnalyses{
				Early: nullIfPresent(review.Phases, "early"),
				Mid:   nullIfPresent(review.Phases, "mid"),
				Late:  nullIfPresent(review.Phases, "late"),
			},
		}

		if s.speech.Enabled() {
			key := repo.AudioKey(folder, base)
			if err := s.speech.Render(ctx, key, voiceID, review.Final); err != nil {
				// Audio is best effort; the text review still stands.
				log.Warn().Err(err).Str("game", base).Msg("audio rendering failed")
			} else {
				analysis.AudioURL = null.StringFrom(audioRoute(key))
			}
		}

		task.analysis = analysis
		task.review = review
		return task, nil
	})
	if err != nil {
		return nil, err
	}

	ordered := make([]indexed, len(results))
	for _, r := range results {
		ordered[r.idx] = r
	}

	resp := &model.AnalyzeGamesResponse{
		GameAnalyses: make([]*model.GameAnalysis, len(ordered)),
	}
	for i, r := range ordered {
		resp.GameAnalyses[i] = r.analysis
	}

	if len(ordered) >= 2 {
		reviews := make(map[string]string, len(ordered))
		contexts := make(map[string]string, len(ordered))
		for _, r := range ordered {
			reviews[r.review.MatchID] = r.review.Final
			contexts[r.review.MatchID] = r.review.Context
		}
		if err := s.analyzeGlobal(ctx, reviews, contexts, folder, req.Champion, voiceID, resp); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (s *Analysis) analyzeGlobal(ctx context.Context, reviews, contexts map[string]string, folder, champion, voiceID string, resp *model.AnalyzeGamesResponse) error {
	stop := observeGeneration("global")
	global, err := s.generator.Generate(ctx, globalPrompt(reviews, contexts))
	stop()
	if err != nil {
		return err
	}

	resp.GlobalSummary = null.StringFrom(summarize(global, globalSummaryLimit))
	resp.GlobalDetailedAnalysis = null.StringFrom(global)

	if s.speech.Enabled() {
		key := repo.GlobalAudioKey(folder, champion)
		if err := s.speech.Render(ctx, key, voiceID, global); err != nil {
			log.Warn().Err(err).Str("champion", champion).Msg("global audio rendering failed")
		} else {
			resp.GlobalAnalysisURL = null.StringFrom(audioRoute(key))
		}
	}
	return nil
}

// audioRoute maps an audio artifact key to the route it is served under.
func audioRoute(key string) string {
	return "/api/audio/" + key
}

func nullIfPresent(m map[string]string, key string) null.String {
	if v, ok := m[key]; ok {
		return null.StringFrom(v)
	}
	return null.String{}
}

// summarize cuts text down to its leading sentence, capped at limit
// characters.
func summarize(text string, limit int) string {
	summary := strings.TrimSpace(text)
	cut := len(summary)
	for _, delim := range sentenceDelimiters {
		if idx := strings.Index(summary, delim); idx >= 0 && idx+1 < cut {
			cut = idx + 1
		}
	}
	summary = summary[:cut]
	// cap counts runes, not bytes, so multi-byte text never gets split mid-rune
	if runes := []rune(summary); len(runes) > limit {
		summary = string(runes[:limit-3]) + "..."
	}
	return summary
}
