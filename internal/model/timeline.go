package model

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Event is a discrete timeline occurrence (kill, ward placement, item
// purchase, level up). Events are distinguished by which fields are present
// rather than a closed enumeration, so they stay schemaless.
type Event map[string]any

// ParticipantFrame is one participant's stat snapshot within a frame:
// top-level scalars (gold, level, cs) plus nested stat groups such as
// championStats and damageStats.
type ParticipantFrame map[string]any

// Frame is one periodic snapshot plus the events since the prior snapshot.
// ParticipantFrames is keyed by the stable slot key "1".."10".
type Frame struct {
	Events            []Event                     `json:"events"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames,omitempty"`
	Timestamp         int64                       `json:"timestamp"`
}

// TimelineParticipant joins a slot id to the player's globally unique puuid.
type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
}

type TimelineInfo struct {
	EndOfGameResult string                 `json:"endOfGameResult,omitempty"`
	FrameInterval   int64                  `json:"frameInterval"`
	Frames          []*Frame               `json:"frames"`
	GameID          int64                  `json:"gameId,omitempty"`
	Participants    []*TimelineParticipant `json:"participants"`
}

// Timeline is the full frame/event record of one match.
type Timeline struct {
	Metadata map[string]any `json:"metadata,omitempty"`
	Info     *TimelineInfo  `json:"info"`
}

func ParseTimeline(raw []byte) (*Timeline, error) {
	var t Timeline
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal timeline")
	}
	if t.Info == nil {
		t.Info = &TimelineInfo{}
	}
	return &t, nil
}

// Frames is a nil-safe accessor.
func (t *Timeline) Frames() []*Frame {
	if t == nil || t.Info == nil {
		return nil
	}
	return t.Info.Frames
}

// Tree serializes the timeline and decodes it back into a generic JSON tree,
// for transforms that operate over arbitrary nested values.
func (t *Timeline) Tree() (map[string]any, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal timeline")
	}
	var tree map[string]any
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, errors.Wrap(err, "failed to rebuild timeline tree")
	}
	return tree, nil
}
