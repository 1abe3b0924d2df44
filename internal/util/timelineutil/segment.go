package timelineutil

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/riftcoach/backend/internal/model"
)

const defaultFrameInterval = 60000

// Window is a named, half-open [StartMinute, EndMinute) slice of a match.
// An invalid EndMinute means the window runs to the end of the game.
type Window struct {
	Name        string
	StartMinute int64
	EndMinute   null.Int
}

// DefaultWindows are the canonical early/mid/late game phases.
func DefaultWindows() []Window {
	return []Window{
		{Name: "early", StartMinute: 0, EndMinute: null.IntFrom(15)},
		{Name: "mid", StartMinute: 15, EndMinute: null.IntFrom(30)},
		{Name: "late", StartMinute: 30},
	}
}

// Segment partitions a timeline into one sub-timeline per window. A frame
// belongs to the window containing its timestamp; within an included frame
// only events inside the window are kept, while participantFrames are carried
// unconditionally (the snapshot's inclusion is already governed by the frame
// timestamp). An unbounded window ends at the last frame timestamp plus one
// millisecond so the final frame is never dropped. Windows that match no
// frames still yield an (empty) phase timeline; a timeline with no frames at
// all yields an empty map.
func Segment(t *model.Timeline, windows []Window) map[string]*model.PhaseTimeline {
	phases := map[string]*model.PhaseTimeline{}

	frames := t.Frames()
	if len(frames) == 0 {
		log.Warn().Msg("no frames found in timeline; nothing to segment")
		return phases
	}

	var lastTimestamp int64
	for _, frame := range frames {
		if frame.Timestamp > lastTimestamp {
			lastTimestamp = frame.Timestamp
		}
	}

	frameInterval := t.Info.FrameInterval
	if frameInterval == 0 {
		frameInterval = defaultFrameInterval
	}

	for _, w := range windows {
		startMs := w.StartMinute * 60 * 1000
		endMs := lastTimestamp + 1
		endMin := float64(lastTimestamp) / 1000 / 60
		if w.EndMinute.Valid {
			endMs = w.EndMinute.Int64 * 60 * 1000
			endMin = float64(w.EndMinute.Int64)
		}

		phaseFrames := []*model.Frame{}
		for _, frame := range frames {
			if frame.Timestamp < startMs || frame.Timestamp >= endMs {
				continue
			}
			events := []model.Event{}
			for _, event := range frame.Events {
				ts, _ := asInt64(event["timestamp"])
				if startMs <= ts && ts < endMs {
					events = append(events, event)
				}
			}
			phaseFrames = append(phaseFrames, &model.Frame{
				Events:            events,
				ParticipantFrames: frame.ParticipantFrames,
				Timestamp:         frame.Timestamp,
			})
		}

		phases[w.Name] = &model.PhaseTimeline{
			Metadata: t.Metadata,
			Info: &model.TimelineInfo{
				EndOfGameResult: t.Info.EndOfGameResult,
				FrameInterval:   frameInterval,
				Frames:          phaseFrames,
				GameID:          t.Info.GameID,
				Participants:    t.Info.Participants,
			},
			PhaseInfo: &model.PhaseInfo{
				PhaseName:     w.Name,
				PhaseStartMs:  startMs,
				PhaseEndMs:    endMs,
				PhaseStartMin: float64(w.StartMinute),
				PhaseEndMin:   endMin,
				NumFrames:     len(phaseFrames),
			},
		}
	}

	return phases
}
